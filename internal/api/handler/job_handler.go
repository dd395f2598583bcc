package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeblaze/portal/internal/core/ports"
)

// JobHandler serves the admin job board and the public careers endpoints.
type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List returns every posting in storage order.
//
// @Summary      List all job postings
// @Tags         admin-jobs
// @Produce      json
// @Success      200  {array}   jobResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponses(jobs))
}

// Create appends a posting.
//
// @Summary      Create a job posting
// @Tags         admin-jobs
// @Accept       json
// @Produce      json
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.Create(c.Request().Context(), toJobInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// Get returns one posting.
//
// @Summary      Get a job posting
// @Tags         admin-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Update replaces the mutable fields of a posting. id and postedDate never change.
//
// @Summary      Update a job posting
// @Tags         admin-jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Job ID"
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.Update(c.Request().Context(), c.Param("id"), toJobInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete removes every posting with the id. Deleting a missing id succeeds.
//
// @Summary      Delete a job posting
// @Tags         admin-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Router       /api/admin/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.jobService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}

// PublicList serves the careers page listing.
//
// @Summary      List open positions
// @Tags         jobs
// @Produce      json
// @Param        department      query     string  false  "Department, case-insensitive"
// @Param        location        query     string  false  "Location, case-insensitive"
// @Param        employmentType  query     string  false  "Employment type"
// @Param        q               query     string  false  "Search in title and description"
// @Param        open            query     bool    false  "Only postings still accepting applications"
// @Param        page            query     int     false  "Page, 1-based"
// @Param        limit           query     int     false  "Page size, at most 100"
// @Success      200             {object}  jobListResponse
// @Failure      400             {object}  errorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) PublicList(c echo.Context) error {
	var q listJobsQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return badRequest(c, err.Error())
	}

	res, err := h.jobService.ListPublic(c.Request().Context(), toListJobsInput(q))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toJobListResponse(res))
}

// PublicGet serves a single posting to the careers page.
//
// @Summary      Get an open position
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) PublicGet(c echo.Context) error {
	return h.Get(c)
}
