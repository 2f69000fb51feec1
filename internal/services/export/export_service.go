package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/xuri/excelize/v2"
)

// Service writes campaign audit reports as Excel workbooks
type Service struct {
	campaignRepo *repository.CallCampaignRepository
	callRepo     *repository.ScheduledCallRepository
	logRepo      *repository.CallLogRepository
	exportsDir   string
}

// NewExportService creates a new export service instance
func NewExportService(
	campaignRepo *repository.CallCampaignRepository,
	callRepo *repository.ScheduledCallRepository,
	logRepo *repository.CallLogRepository,
	exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		campaignRepo: campaignRepo,
		callRepo:     callRepo,
		logRepo:      logRepo,
		exportsDir:   exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	FilePath string
}

const (
	callsSheet = "Scheduled Calls"
	logsSheet  = "Call Logs"
)

// ExportCampaignReport exports a call campaign's schedule and attempt history
// to an Excel file and returns where it was written.
func (s *Service) ExportCampaignReport(campaignID string) (*ExportResult, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	calls, err := s.callRepo.GetByCampaignID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled calls: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", callsSheet)
	if _, err := f.NewSheet(logsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	callHeaders := []string{"ID", "Contact", "Phone", "Subject", "Scheduled At", "Status", "Retries", "Skipped Reason"}
	for i, header := range callHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(callsSheet, cell, header)
	}

	logHeaders := []string{"Conversation ID", "Contact", "Phone", "Outcome", "Duration (s)", "Turns", "Email Sent", "Attempted At"}
	for i, header := range logHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(logsSheet, cell, header)
	}

	logRow := 2
	for i, call := range calls {
		reason := ""
		if call.SkippedReason != nil {
			reason = *call.SkippedReason
		}
		row := []interface{}{
			call.ID,
			call.ContactName,
			call.Phone,
			call.Subject,
			call.ScheduledAt.Format(time.RFC3339),
			call.Status,
			call.RetryCount,
			reason,
		}
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(callsSheet, cell, value)
		}

		logs, err := s.logRepo.GetByScheduledCallID(call.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get call logs: %w", err)
		}
		for _, log := range logs {
			row := []interface{}{
				log.ConversationID,
				call.ContactName,
				call.Phone,
				log.Outcome,
				log.DurationSeconds,
				len(log.Transcript),
				log.EmailSent,
				log.CreatedAt.Format(time.RFC3339),
			}
			for j, value := range row {
				cell, _ := excelize.CoordinatesToCellName(j+1, logRow)
				f.SetCellValue(logsSheet, cell, value)
			}
			logRow++
		}
	}

	filename := fmt.Sprintf("campaign_%s_%d.xlsx", campaignID, time.Now().Unix())
	filePath := filepath.Join(s.exportsDir, filename)
	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Exported campaign %q (%d scheduled calls)", campaign.Name, len(calls)),
		Filename: filename,
		FilePath: filePath,
	}, nil
}
