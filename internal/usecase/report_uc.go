package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// ReportUsecase forwards abuse reports to the admin mailbox.
type ReportUsecase struct {
	mailer domain.Mailer
	logger *logger.Logger
}

// NewReportUsecase creates a new ReportUsecase.
func NewReportUsecase(mailer domain.Mailer, log *logger.Logger) *ReportUsecase {
	return &ReportUsecase{
		mailer: mailer,
		logger: log.Named("ReportUsecase"),
	}
}

// Submit validates and mails a report about an ad or a user.
func (uc *ReportUsecase) Submit(ctx context.Context, report domain.Report) error {
	if report.Type != "ad" && report.Type != "user" {
		return fmt.Errorf("%w: report type must be 'ad' or 'user'", domain.ErrInvalidInput)
	}
	if report.ItemID == "" || strings.TrimSpace(report.Description) == "" {
		return fmt.Errorf("%w: item id and description are required", domain.ErrInvalidInput)
	}

	if err := uc.mailer.SendReport(report); err != nil {
		uc.logger.Error("Failed to send report email", zap.Error(err), zap.String("item_id", report.ItemID))
		return err
	}
	uc.logger.Info("Report submitted", zap.String("type", report.Type), zap.String("item_id", report.ItemID))
	return nil
}
