package handler

// jobRequest is the body of POST and PUT /api/admin/jobs. Title and
// description are checked by the service so blank strings are caught too.
type jobRequest struct {
	Title               string   `json:"title" example:"Backend Engineer Intern"`
	EmploymentType      string   `json:"employmentType" validate:"omitempty,oneof=Full-time Part-time Contract Internship Remote" example:"Internship"`
	Department          string   `json:"department" example:"Engineering"`
	Location            string   `json:"location" example:"Remote"`
	ApplicationDeadline string   `json:"applicationDeadline" validate:"omitempty,datetime=2006-01-02" example:"2026-12-31"`
	Description         string   `json:"description" example:"Build APIs for the careers portal."`
	Requirements        []string `json:"requirements"`
	Responsibilities    []string `json:"responsibilities"`
	Benefits            []string `json:"benefits"`
}

type jobResponse struct {
	ID                  string   `json:"id" example:"1760000000000"`
	Slug                string   `json:"slug" example:"backend-engineer-intern"`
	Title               string   `json:"title"`
	EmploymentType      string   `json:"employmentType"`
	Department          string   `json:"department"`
	Location            string   `json:"location"`
	ApplicationDeadline string   `json:"applicationDeadline"`
	Description         string   `json:"description"`
	Requirements        []string `json:"requirements"`
	Responsibilities    []string `json:"responsibilities"`
	Benefits            []string `json:"benefits"`
	PostedDate          string   `json:"postedDate" example:"2026-10-19"`
}

// listJobsQuery binds the query string of GET /api/jobs.
type listJobsQuery struct {
	Department     string `query:"department"`
	Location       string `query:"location"`
	EmploymentType string `query:"employmentType"`
	Q              string `query:"q"`
	Open           bool   `query:"open"`
	Page           int    `query:"page" validate:"omitempty,min=1"`
	Limit          int    `query:"limit" validate:"omitempty,min=1"`
}

type pagination struct {
	Total      int64 `json:"total" example:"42"`
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	TotalPages int   `json:"totalPages" example:"5"`
}

type jobListResponse struct {
	Data       []jobResponse `json:"data"`
	Pagination pagination    `json:"pagination"`
}
