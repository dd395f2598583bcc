package handler

import (
	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"
)

func toJobInput(r jobRequest) ports.JobInput {
	return ports.JobInput{
		Title:               r.Title,
		EmploymentType:      r.EmploymentType,
		Department:          r.Department,
		Location:            r.Location,
		ApplicationDeadline: r.ApplicationDeadline,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		Benefits:            r.Benefits,
	}
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:                  j.ID,
		Slug:                j.Slug,
		Title:               j.Title,
		EmploymentType:      string(j.EmploymentType),
		Department:          j.Department,
		Location:            j.Location,
		ApplicationDeadline: j.ApplicationDeadline,
		Description:         j.Description,
		Requirements:        orEmpty(j.Requirements),
		Responsibilities:    orEmpty(j.Responsibilities),
		Benefits:            orEmpty(j.Benefits),
		PostedDate:          j.PostedDate,
	}
}

func toJobResponses(jobs []*domain.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

func toListJobsInput(q listJobsQuery) ports.ListJobsInput {
	return ports.ListJobsInput{
		Filter: domain.JobFilter{
			Department:     q.Department,
			Location:       q.Location,
			EmploymentType: q.EmploymentType,
			Query:          q.Q,
			OpenOnly:       q.Open,
		},
		Page:  q.Page,
		Limit: q.Limit,
	}
}

func toJobListResponse(r *ports.ListJobsResult) jobListResponse {
	return jobListResponse{
		Data: toJobResponses(r.Items),
		Pagination: pagination{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

// orEmpty keeps list fields rendering as [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
