package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stashops/depotd/internal/domain/containers"
	"github.com/stashops/depotd/internal/domain/deposits"
	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/domain/products"
	"github.com/stashops/depotd/internal/domain/sequence"
	"github.com/stashops/depotd/internal/domain/weekly"
)

type Handler struct {
	log        *slog.Logger
	products   *products.Repo
	containers *containers.Repo
	ledger     *ledger.Service
	deposits   *deposits.Service
	weekly     *weekly.Repo
}

func NewHandler(log *slog.Logger, productsRepo *products.Repo, containersRepo *containers.Repo,
	ledgerSvc *ledger.Service, depositsSvc *deposits.Service, weeklyRepo *weekly.Repo) *Handler {
	return &Handler{
		log: log, products: productsRepo, containers: containersRepo,
		ledger: ledgerSvc, deposits: depositsSvc, weekly: weeklyRepo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	var ve *ledger.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, deposits.ErrEmptyDeposit),
		errors.Is(err, deposits.ErrNegativeField):
		writeJSON(w, http.StatusBadRequest, errResp{Error: err.Error()})
	case errors.Is(err, deposits.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResp{Error: err.Error()})
	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, containers.ErrInUse):
		writeJSON(w, http.StatusConflict, errResp{Error: err.Error()})
	case errors.Is(err, sequence.ErrAllocationFailed):
		writeJSON(w, http.StatusServiceUnavailable, errResp{Error: err.Error()})
	default:
		h.log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errResp{Error: "internal error"})
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

/* Products */

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.products.List(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	out := make([]namedDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, namedDTO{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createNameReq
	if err := decode(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "name is required"})
		return
	}
	p, err := h.products.Create(r.Context(), req.Name)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, namedDTO{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
}

/* Containers */

func (h *Handler) listContainers(w http.ResponseWriter, r *http.Request) {
	cs, err := h.containers.List(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	out := make([]namedDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, namedDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createContainer(w http.ResponseWriter, r *http.Request) {
	var req createNameReq
	if err := decode(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "name is required"})
		return
	}
	c, err := h.containers.Create(r.Context(), req.Name)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, namedDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
}

func (h *Handler) deleteContainer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad container id"})
		return
	}
	if err := h.containers.Delete(r.Context(), id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* Ledger */

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "product is required"})
		return
	}
	var containerID *int64
	if s := r.URL.Query().Get("container"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errResp{Error: "bad container id"})
			return
		}
		containerID = &id
	}
	bal, err := h.ledger.Balance(r.Context(), productID, containerID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": bal})
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "product is required"})
		return
	}
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	movs, err := h.ledger.Recent(r.Context(), productID, limit)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	out := make([]movementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad request body"})
		return
	}
	if err := h.ledger.Transfer(r.Context(), req.Actor.toActor(), req.ProductID, req.From, req.To, req.Qty); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sale(w http.ResponseWriter, r *http.Request) {
	var req saleReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad request body"})
		return
	}
	if err := h.ledger.Sale(r.Context(), req.Actor.toActor(), req.ProductID, req.ContainerID, req.Qty, req.Note); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* Deposits */

func (h *Handler) listDeposits(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	ds, err := h.deposits.List(r.Context(), r.URL.Query().Get("creator"), limit)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	out := make([]depositDTO, 0, len(ds))
	for i := range ds {
		out = append(out, toDepositDTO(&ds[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createDeposit(w http.ResponseWriter, r *http.Request) {
	var req createDepositReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad request body"})
		return
	}
	d, err := h.deposits.Create(r.Context(), deposits.Deposit{
		CreatorUID:     req.Creator.UID,
		CreatorName:    req.Creator.Name,
		ProductID:      req.ProductID,
		Efedrina:       req.Efedrina,
		Folhas:         req.Folhas,
		Embalagens:     req.Embalagens,
		Dinheiro:       req.Dinheiro,
		ProofURL:       req.ProofURL,
		ProofExpiresAt: req.ProofExpiresAt,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDepositDTO(d))
}

func (h *Handler) getDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad deposit id"})
		return
	}
	d, err := h.deposits.GetByID(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if d == nil {
		writeJSON(w, http.StatusNotFound, errResp{Error: "deposit not found"})
		return
	}
	writeJSON(w, http.StatusOK, toDepositDTO(d))
}

func (h *Handler) toggleDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad deposit id"})
		return
	}
	var req toggleReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad request body"})
		return
	}
	flag, ok := deposits.ParseFlag(req.Flag)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "unknown flag " + req.Flag})
		return
	}
	res, err := h.deposits.SetFlag(r.Context(), id, flag, req.Value, req.Actor.toActor())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResp{Deposit: toDepositDTO(res.Deposit), Warning: res.Warning})
}

func (h *Handler) deleteDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "bad deposit id"})
		return
	}
	if err := h.deposits.Delete(r.Context(), id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* Weekly aggregate */

func (h *Handler) getWeekly(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	week := chi.URLParam(r, "week")
	totals, err := h.weekly.Get(r.Context(), uid, week)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
