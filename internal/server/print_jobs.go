package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	printjobdomain "github.com/kmurdhar/PrinterManagementSystem/internal/printjob/domain"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/pagination"
)

type createPrintJobRequest struct {
	JobID        string         `json:"jobId"`
	UserName     string         `json:"userName"`
	MachineName  string         `json:"machineName"`
	PrinterName  string         `json:"printerName"`
	DocumentName string         `json:"documentName"`
	PageCount    int            `json:"pageCount"`
	PrintTime    string         `json:"printTime"`
	Status       string         `json:"status"`
	FileSize     int64          `json:"fileSize"`
	Metadata     map[string]any `json:"metadata"`
}

// @Summary      Report Print Job
// @Description  Ingest one print-job report from an agent
// @Tags         print-jobs
// @Accept       json
// @Produce      json
// @Param        request body createPrintJobRequest true "Job Report"
// @Success      201  {object}  printjobdomain.PrintJob
// @Router       /print-jobs [post]
func (s *Server) CreatePrintJob(c *gin.Context) {
	var req createPrintJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	machine := strings.TrimSpace(req.MachineName)
	if machine != "" && !s.ingestLimiter.Allow(machine) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	printTime, err := parseOptionalTime(req.PrintTime, false)
	if err != nil {
		AbortWithError(c, newValidationError("printTime", "invalid_print_time", "invalid printTime"))
		return
	}

	record, err := s.jobSvc.Ingest(c.Request.Context(), printjobdomain.IngestRequest{
		JobID:        req.JobID,
		UserName:     req.UserName,
		MachineName:  req.MachineName,
		PrinterName:  req.PrinterName,
		DocumentName: req.DocumentName,
		PageCount:    req.PageCount,
		PrintTime:    printTime,
		Status:       req.Status,
		FileSize:     req.FileSize,
		Metadata:     req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

// @Summary      List Print Jobs
// @Description  Query the job log with optional filters and pagination
// @Tags         print-jobs
// @Produce      json
// @Param        user       query  string  false  "User name substring"
// @Param        printer    query  string  false  "Printer name substring"
// @Param        startDate  query  string  false  "Inclusive lower bound on print time"
// @Param        endDate    query  string  false  "Inclusive upper bound on print time"
// @Param        search     query  string  false  "Substring over document or user name"
// @Param        page       query  int     false  "Page (1-based)"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  printjobdomain.ListResponse
// @Router       /print-jobs [get]
func (s *Server) ListPrintJobs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		User      string `form:"user"`
		Printer   string `form:"printer"`
		StartDate string `form:"startDate"`
		EndDate   string `form:"endDate"`
		Search    string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(query.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
		return
	}

	endDate, err := parseOptionalTime(query.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	resp, err := s.jobSvc.List(c.Request.Context(), printjobdomain.ListRequest{
		Filter: printjobdomain.Filter{
			UserContains:    strings.TrimSpace(query.User),
			PrinterContains: strings.TrimSpace(query.Printer),
			From:            startDate,
			To:              endDate,
			TextSearch:      strings.TrimSpace(query.Search),
		},
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// parseOptionalTime accepts RFC3339 or a bare date. A bare date used as an
// end bound covers the whole day.
func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	utc := parsed.UTC()
	return &utc, nil
}
