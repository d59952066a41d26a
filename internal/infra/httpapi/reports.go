package httpapi

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/stashops/depotd/internal/domain/weekly"
)

// weeklyReport streams the paid totals of one ISO week as an XLSX sheet,
// one row per user.
func (h *Handler) weeklyReport(w http.ResponseWriter, r *http.Request) {
	week := r.URL.Query().Get("week")
	if week == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "week is required, e.g. 2025-W03"})
		return
	}

	byUser, err := h.weekly.ListWeek(r.Context(), week)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	headers := []string{"UID", weekly.KeyEfedrina, weekly.KeyFolhas, weekly.KeyEmbalagens, weekly.KeyDinheiro}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hd)
	}

	uids := make([]string, 0, len(byUser))
	for uid := range byUser {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	for row, uid := range uids {
		totals := byUser[uid]
		values := []any{
			uid,
			totals[weekly.KeyEfedrina].String(),
			totals[weekly.KeyFolhas].String(),
			totals[weekly.KeyEmbalagens].String(),
			totals[weekly.KeyDinheiro].String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="paid-%s.xlsx"`, week))
	if err := f.Write(w); err != nil {
		h.log.Error("weekly report write failed", "week", week, "err", err)
	}
}
