package checks

import (
	"errors"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// CatalogReport is the health of one rules family.
type CatalogReport struct {
	Family     string   `json:"family"`
	Resource   string   `json:"resource"`
	Status     string   `json:"status"` // "ok", "error"
	Kind       string   `json:"kind,omitempty"`
	Error      string   `json:"error,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Warnings   int      `json:"warnings"`
}

// OK reports whether the family loaded.
func (r CatalogReport) OK() bool {
	return r.Status == "ok"
}

// CheckCatalogs loads every catalog and reports each one separately.
func CheckCatalogs(loaders []catalog.Loader) []CatalogReport {
	reports := make([]CatalogReport, 0, len(loaders))
	for _, l := range loaders {
		err := l.Warm()
		st := l.Status()
		report := CatalogReport{Family: st.Family, Resource: st.Resource, Status: "ok", Warnings: st.Warnings}
		if err != nil {
			report.Status = "error"
			report.Error = err.Error()
			var le *catalog.LoadError
			if errors.As(err, &le) {
				report.Kind = le.Kind().Error()
				for _, v := range le.Violations {
					report.Violations = append(report.Violations, v.Error())
				}
			}
		}
		reports = append(reports, report)
	}
	return reports
}

// Healthy reports whether every catalog loaded.
func Healthy(reports []CatalogReport) bool {
	for _, r := range reports {
		if !r.OK() {
			return false
		}
	}
	return true
}
