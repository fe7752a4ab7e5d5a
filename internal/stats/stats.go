// Package stats holds the derived-field computations: everything here is
// a pure function over already-fetched collections so it can be tested
// without a store.
package stats

import (
	"math"

	"github.com/ramcivil/monitoring-service/internal/model"
)

// RemainingValue is the contract budget minus every matching work
// order's realized value. A nil realized value counts as 0; an empty
// work-order list leaves the full contract value.
func RemainingValue(contract model.Contract, workOrders []model.WorkOrder) float64 {
	remaining := contract.NilaiKontrak
	for _, wo := range workOrders {
		if wo.KontrakPayungID != contract.ID {
			continue
		}
		remaining -= wo.Realized()
	}
	return remaining
}

// AverageProgress returns the unrounded mean progress, 0 for an empty
// list. Callers round: the dashboard to an integer, the printed report
// to one decimal.
func AverageProgress(workOrders []model.WorkOrder) float64 {
	if len(workOrders) == 0 {
		return 0
	}
	sum := 0
	for _, wo := range workOrders {
		sum += wo.ProgressPercentage
	}
	return float64(sum) / float64(len(workOrders))
}

func CompletedCount(workOrders []model.WorkOrder) int {
	count := 0
	for _, wo := range workOrders {
		if wo.ProgressPercentage == 100 {
			count++
		}
	}
	return count
}

func TotalEstimated(workOrders []model.WorkOrder) float64 {
	total := 0.0
	for _, wo := range workOrders {
		total += wo.NilaiEstimasiBiaya
	}
	return total
}

func TotalRealized(workOrders []model.WorkOrder) float64 {
	total := 0.0
	for _, wo := range workOrders {
		total += wo.Realized()
	}
	return total
}

// GroupNotifications buckets notifications by work-order id, preserving
// arrival order inside each bucket, so attaching them to their parents
// is a single O(n) pass.
func GroupNotifications(notifications []model.Notification) map[string][]model.Notification {
	grouped := make(map[string][]model.Notification)
	for _, n := range notifications {
		grouped[n.SPKID] = append(grouped[n.SPKID], n)
	}
	return grouped
}

// ContractBreakdown classifies contracts for the dashboard: aktif has no
// work orders yet, selesai has all work orders at 100%, belum selesai
// has at least one unfinished.
type ContractBreakdown struct {
	Aktif        int `json:"aktif"`
	BelumSelesai int `json:"belum_selesai"`
	Selesai      int `json:"selesai"`
}

func BreakdownContracts(contracts []model.Contract, workOrders []model.WorkOrder) ContractBreakdown {
	byContract := make(map[string][]model.WorkOrder)
	for _, wo := range workOrders {
		byContract[wo.KontrakPayungID] = append(byContract[wo.KontrakPayungID], wo)
	}

	var breakdown ContractBreakdown
	for _, c := range contracts {
		list := byContract[c.ID]
		switch {
		case len(list) == 0:
			breakdown.Aktif++
		case CompletedCount(list) == len(list):
			breakdown.Selesai++
		default:
			breakdown.BelumSelesai++
		}
	}
	return breakdown
}

// Dashboard is the stat card payload the dashboard renders. The average
// here is the integer rounding the cards always showed.
type Dashboard struct {
	TotalKontrak      int               `json:"total_kontrak"`
	TotalSPK          int               `json:"total_spk"`
	TotalNotifikasi   int               `json:"total_notifikasi"`
	TotalNilaiKontrak float64           `json:"total_nilai_kontrak"`
	TotalNilaiSPK     float64           `json:"total_nilai_spk"`
	TotalRealisasiSPK float64           `json:"total_realisasi_spk"`
	AvgProgress       int               `json:"avg_progress"`
	CompletedSPK      int               `json:"completed_spk"`
	Breakdown         ContractBreakdown `json:"kontrak_breakdown"`
}

func BuildDashboard(contracts []model.Contract, workOrders []model.WorkOrder, notifications []model.Notification) Dashboard {
	totalContractValue := 0.0
	for _, c := range contracts {
		totalContractValue += c.NilaiKontrak
	}

	return Dashboard{
		TotalKontrak:      len(contracts),
		TotalSPK:          len(workOrders),
		TotalNotifikasi:   len(notifications),
		TotalNilaiKontrak: totalContractValue,
		TotalNilaiSPK:     TotalEstimated(workOrders),
		TotalRealisasiSPK: TotalRealized(workOrders),
		AvgProgress:       int(math.Round(AverageProgress(workOrders))),
		CompletedSPK:      CompletedCount(workOrders),
		Breakdown:         BreakdownContracts(contracts, workOrders),
	}
}
