package http

import (
	"net/http"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
)

type JobRunHandler struct {
	Scheduler *service.Scheduler
}

// ServeHTTP godoc
//
//	@Summary		Run Job
//	@Description	Run a scheduler job now and wait for its report. A job that fails still returns 200
//	@Description	with the failure in the report's error field.
//	@Tags			Jobs
//	@Produce		json
//	@Param			name	path		string				true	"Job name"	Enums(expire_and_release, process_queue, cleanup_old)
//	@Success		200		{object}	accesssdk.JobReport	"run report"
//	@Failure		404		{object}	accesssdk.APIError	"unknown_job"
//	@Failure		409		{object}	accesssdk.APIError	"job_running"
//	@Failure		503		{object}	accesssdk.APIError	"unavailable"
//	@Security		BearerAuth
//	@Router			/v1/jobs/{name}/run [post].
func (h *JobRunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Scheduler.RunJob(r.Context(), r.PathValue("name"))
	if err != nil && rep.RunID == "" {
		writeError(w, r, err, "Failed to run job")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobReport(rep))
}

type JobsListHandler struct {
	Scheduler *service.Scheduler
}

// ServeHTTP godoc
//
//	@Summary		List Jobs
//	@Description	Return every scheduler job with its state, schedule, next run and last report.
//	@Tags			Jobs
//	@Produce		json
//	@Success		200	{object}	accesssdk.JobsResponse	"jobs"
//	@Security		BearerAuth
//	@Router			/v1/jobs [get].
func (h *JobsListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	statuses := h.Scheduler.Jobs()
	resp := accesssdk.JobsResponse{Jobs: make([]accesssdk.JobStatus, 0, len(statuses))}
	for _, st := range statuses {
		resp.Jobs = append(resp.Jobs, toJobStatus(st))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
