package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ramcivil/monitoring-service/internal/config"
	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/report"
	"github.com/ramcivil/monitoring-service/internal/repository"
)

// Renderer turns a built document tree into one output format.
type Renderer interface {
	Generate(doc *report.Document) ([]byte, error)
}

type ReportService struct {
	store repository.Store
	pdf   Renderer
	xlsx  Renderer
	cfg   *config.Config
}

type GenerateResult struct {
	FileName string
	Content  []byte
}

func NewReportService(store repository.Store, pdf, xlsx Renderer, cfg *config.Config) *ReportService {
	return &ReportService{store: store, pdf: pdf, xlsx: xlsx, cfg: cfg}
}

// GeneratePDF renders a caller-supplied aggregate. Existence checks
// happened upstream; only structural breakage is rejected here.
func (s *ReportService) GeneratePDF(ctx context.Context, data model.Report) (*GenerateResult, error) {
	doc, err := s.build(data)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{
		FileName: buildFileName(data.Kontrak.NamaKontrakPayung, "pdf"),
		Content:  content,
	}, nil
}

func (s *ReportService) GenerateXLSX(ctx context.Context, data model.Report) (*GenerateResult, error) {
	doc, err := s.build(data)
	if err != nil {
		return nil, err
	}
	content, err := s.xlsx.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{
		FileName: buildFileName(data.Kontrak.NamaKontrakPayung, "xlsx"),
		Content:  content,
	}, nil
}

// RenderHTML hydrates a contract from the store and emits the printable
// view. A missing contract is the caller's 404, never a malformed report.
func (s *ReportService) RenderHTML(ctx context.Context, contractID string) ([]byte, error) {
	data, err := s.Hydrate(ctx, contractID)
	if err != nil {
		return nil, err
	}
	doc, err := s.build(*data)
	if err != nil {
		return nil, err
	}
	return report.RenderHTML(doc)
}

// Hydrate loads the full aggregate: the contract, its work orders in
// work-order-number order, and each work order's own notifications in
// arrival order.
func (s *ReportService) Hydrate(ctx context.Context, contractID string) (*model.Report, error) {
	contracts, ok := s.store.Collection(repository.CollectionContracts)
	if !ok {
		return nil, ErrNotFound
	}
	workOrders, ok := s.store.Collection(repository.CollectionWorkOrders)
	if !ok {
		return nil, ErrNotFound
	}
	notifications, ok := s.store.Collection(repository.CollectionNotifications)
	if !ok {
		return nil, ErrNotFound
	}

	contractDoc, err := contracts.FindByID(ctx, contractID)
	switch err {
	case nil:
	case repository.ErrInvalidID:
		return nil, ErrInvalidID
	case repository.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: load contract", ErrStoreUnavailable)
	}
	contract := repository.DecodeContract(contractDoc)

	workOrderDocs, err := workOrders.FindByKey(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("%w: load work orders", ErrStoreUnavailable)
	}

	data := &model.Report{
		Kontrak: model.ReportContract{
			ID:                contract.ID,
			NamaKontrakPayung: contract.NamaKontrakPayung,
			NomorOAS:          contract.NomorOAS,
			WaktuPerjanjian:   contract.WaktuPerjanjian,
			PeriodeKontrak:    contract.PeriodeKontrak,
			NilaiKontrak:      contract.NilaiKontrak,
		},
		SPKList: []model.ReportWorkOrder{},
	}

	for _, doc := range workOrderDocs {
		wo := repository.DecodeWorkOrder(doc)
		entry := model.ReportWorkOrder{
			ID:                 wo.ID,
			NoSPK:              wo.NoSPK,
			JudulSPK:           wo.JudulSPK,
			DurasiSPK:          wo.DurasiSPK,
			NilaiEstimasiBiaya: wo.NilaiEstimasiBiaya,
			RealisasiSPK:       wo.RealisasiSPK,
			ProgressPercentage: wo.ProgressPercentage,
			Keterangan:         wo.Keterangan,
			Notifikasi:         []model.ReportNotification{},
		}
		notificationDocs, err := notifications.FindByKey(ctx, wo.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: load notifications", ErrStoreUnavailable)
		}
		for _, notifDoc := range notificationDocs {
			notif := repository.DecodeNotification(notifDoc)
			entry.Notifikasi = append(entry.Notifikasi, model.ReportNotification{
				ID:              notif.ID,
				NoNotif:         notif.NoNotif,
				JudulNotifikasi: notif.JudulNotifikasi,
				Lokasi:          notif.Lokasi,
			})
		}
		data.SPKList = append(data.SPKList, entry)
	}
	return data, nil
}

func (s *ReportService) build(data model.Report) (*report.Document, error) {
	return report.Build(data, s.cfg.Report.OrgName, s.cfg.Report.OrgUnit, time.Now())
}

func buildFileName(contractName, extension string) string {
	name := sanitizeFileName(contractName)
	if name == "" {
		return "laporan-monitoring." + extension
	}
	return fmt.Sprintf("laporan-monitoring-%s.%s", name, extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
