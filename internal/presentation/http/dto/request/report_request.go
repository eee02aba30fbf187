package request

// ProductReportRequest represents a product sales report request. The
// laboratory name and at least one product name are mandatory; everything
// else narrows the order set.
type ProductReportRequest struct {
	ProductNames      []string `json:"productNames" binding:"required"`
	FilterLaboratory  string   `json:"filterLaboratory" binding:"required"`
	FilterSeller      string   `json:"filterSeller"`
	FilterDistributor string   `json:"filterDistributor"`
	StartDate         string   `json:"startDate"` // ISO date
	EndDate           string   `json:"endDate"`   // ISO date
}
