package worker

// email_worker.go
// Builds the income/expense report for a date range, renders it to PDF and
// mails it through the SMTP circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReporteEmailPayload is the job envelope sent to QueueEmail. Dates are YYYY-MM-DD.
type ReporteEmailPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Desde  string `json:"desde,omitempty"`
	Hasta  string `json:"hasta,omitempty"`
}

// ReporteBuilder loads the report data of an owner for a date range.
type ReporteBuilder interface {
	Resumen(ctx context.Context, owner uuid.UUID, desde, hasta *time.Time) (reporte.Resumen, error)
}

// PDFSender delivers a PDF attachment by e-mail.
type PDFSender interface {
	SendPDF(to, subject, body, fileName string, data []byte) error
}

type ReporteEmailWorker struct {
	builder ReporteBuilder
	mailer  PDFSender
	cb      *infra.CircuitBreaker
	negocio string
}

func NewReporteEmailWorker(builder ReporteBuilder, mailer PDFSender, cb *infra.CircuitBreaker, negocio string) *ReporteEmailWorker {
	return &ReporteEmailWorker{builder: builder, mailer: mailer, cb: cb, negocio: negocio}
}

func (w *ReporteEmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.Email == "" {
		log.Warn().Msg("email_worker: empty email, skipping")
		return nil
	}
	owner, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Str("user_id", payload.UserID).Msg("email_worker: invalid user_id")
		return nil
	}
	desde, err1 := reporte.ParseFecha(payload.Desde, time.Local)
	hasta, err2 := reporte.ParseFecha(payload.Hasta, time.Local)
	if err1 != nil || err2 != nil {
		log.Error().Str("desde", payload.Desde).Str("hasta", payload.Hasta).Msg("email_worker: invalid dates")
		return nil
	}
	if hasta != nil {
		fin := reporte.FinDelDia(*hasta)
		hasta = &fin
	}

	resumen, err := w.builder.Resumen(ctx, owner, desde, hasta)
	if err != nil {
		return fmt.Errorf("email_worker: build report: %w", err)
	}
	data, err := infra.GenerateReportePDF(resumen, w.negocio)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s: Reporte de ingresos y gastos", w.negocio)
	body := fmt.Sprintf("Adjunto el reporte.\nIngresos: Bs %s\nInversión: Bs %s\nSaldo neto: Bs %s",
		resumen.TotalVentas.StringFixed(2), resumen.Inversion.StringFixed(2), resumen.SaldoNeto.StringFixed(2))
	send := func() error {
		return w.mailer.SendPDF(payload.Email, subject, body, "reporte.pdf", data)
	}
	if w.cb != nil {
		err = w.cb.Execute(send)
	} else {
		err = send()
	}
	if errors.Is(err, infra.ErrSMTPNoConfigurado) {
		log.Error().Str("to", payload.Email).Msg("email_worker: SMTP not configured, dropping job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.Email, err)
	}
	log.Info().Str("to", payload.Email).Msg("email_worker: report sent")
	return nil
}
