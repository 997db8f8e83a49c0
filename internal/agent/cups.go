package agent

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CommandRunner abstracts lpstat invocation so parsing is testable without a
// CUPS installation.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// CUPSSource reads completed jobs from the local CUPS scheduler via lpstat.
type CUPSSource struct {
	runner CommandRunner
	host   string
	log    *zap.Logger
}

// NewCUPSSource builds a source for the local scheduler.
func NewCUPSSource(log *zap.Logger) *CUPSSource {
	host, _ := os.Hostname()
	return &CUPSSource{
		runner: execRunner{},
		host:   host,
		log:    log.Named("agent.cups"),
	}
}

// Available reports whether the CUPS scheduler is installed and running.
func (s *CUPSSource) Available(ctx context.Context) bool {
	out, err := s.runner.Run(ctx, "lpstat", "-r")
	if err != nil {
		return false
	}
	return strings.Contains(out, "scheduler is running")
}

// CompletedJobs lists jobs CUPS reports as completed. Each line looks like
// "HP_LaserJet-42 alice 1024 Mon 11 Jun 2025 10:30:00 AM".
func (s *CUPSSource) CompletedJobs(ctx context.Context) ([]Report, error) {
	out, err := s.runner.Run(ctx, "lpstat", "-W", "completed", "-o")
	if err != nil {
		return nil, fmt.Errorf("lpstat completed jobs: %w", err)
	}

	var reports []Report
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		report, ok := s.parseJobLine(ctx, line)
		if !ok {
			s.log.Debug("unparseable lpstat line", zap.String("line", line))
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *CUPSSource) parseJobLine(ctx context.Context, line string) (Report, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return Report{}, false
	}

	printerJob := parts[0]
	userName := parts[1]

	var printerName, jobID string
	if idx := strings.LastIndex(printerJob, "-"); idx > 0 {
		printerName = strings.ReplaceAll(printerJob[:idx], "_", " ")
		jobID = printerJob[idx+1:]
	} else {
		printerName = strings.ReplaceAll(printerJob, "_", " ")
		jobID = strconv.FormatInt(time.Now().Unix(), 10)
	}

	details := s.jobDetails(ctx, jobID)

	return Report{
		dedupKey:     printerJob,
		JobID:        fmt.Sprintf("cups-%s-%d", jobID, time.Now().Unix()),
		UserName:     userName,
		MachineName:  s.host,
		PrinterName:  printerName,
		DocumentName: details.documentName,
		PageCount:    details.pageCount,
		PrintTime:    time.Now().UTC().Format(time.RFC3339),
		Status:       "completed",
		FileSize:     details.fileSize,
	}, true
}

type jobDetails struct {
	documentName string
	pageCount    int
	fileSize     int64
}

var digits = regexp.MustCompile(`\d+`)

// jobDetails asks lpstat for per-job attributes; missing details fall back
// to safe defaults rather than dropping the report.
func (s *CUPSSource) jobDetails(ctx context.Context, jobID string) jobDetails {
	details := jobDetails{documentName: "Unknown Document", pageCount: 1}

	out, err := s.runner.Run(ctx, "lpstat", "-l", "-j", jobID)
	if err != nil {
		return details
	}

	for _, line := range strings.Split(out, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.Contains(lower, "document-name"), strings.Contains(lower, "document name"):
			if idx := strings.LastIndex(line, "="); idx >= 0 {
				if name := strings.TrimSpace(line[idx+1:]); name != "" {
					details.documentName = name
				}
			}
		case strings.Contains(lower, "pages"), strings.Contains(lower, "page-count"):
			if match := digits.FindString(line); match != "" {
				if pages, err := strconv.Atoi(match); err == nil {
					details.pageCount = pages
				}
			}
		case strings.Contains(lower, "size"):
			if match := digits.FindString(line); match != "" {
				if size, err := strconv.ParseInt(match, 10, 64); err == nil {
					details.fileSize = size
				}
			}
		}
	}
	return details
}
