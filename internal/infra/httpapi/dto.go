package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stashops/depotd/internal/domain/deposits"
	"github.com/stashops/depotd/internal/domain/ledger"
)

type actorDTO struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	Role int    `json:"role"`
}

func (a actorDTO) toActor() ledger.Actor {
	return ledger.Actor{UID: a.UID, Name: a.Name, Role: a.Role}
}

type createNameReq struct {
	Name string `json:"name"`
}

type transferReq struct {
	Actor     actorDTO `json:"actor"`
	ProductID int64    `json:"product_id"`
	From      int64    `json:"from_container"`
	To        int64    `json:"to_container"`
	Qty       int64    `json:"qty"`
}

type saleReq struct {
	Actor       actorDTO `json:"actor"`
	ProductID   int64    `json:"product_id"`
	ContainerID int64    `json:"container_id"`
	Qty         int64    `json:"qty"`
	Note        string   `json:"note,omitempty"`
}

type createDepositReq struct {
	Creator        actorDTO        `json:"creator"`
	ProductID      int64           `json:"product_id"`
	Efedrina       int64           `json:"efedrina"`
	Folhas         int64           `json:"folhas"`
	Embalagens     int64           `json:"embalagens"`
	Dinheiro       decimal.Decimal `json:"dinheiro"`
	ProofURL       string          `json:"proof_url,omitempty"`
	ProofExpiresAt *time.Time      `json:"proof_expires_at,omitempty"`
}

type toggleReq struct {
	Actor actorDTO `json:"actor"`
	Flag  string   `json:"flag"`
	Value bool     `json:"value"`
}

type depositDTO struct {
	ID             int64           `json:"id"`
	Code           string          `json:"code"`
	CreatorUID     string          `json:"creator_uid"`
	CreatorName    string          `json:"creator_name"`
	ProductID      int64           `json:"product_id"`
	Efedrina       int64           `json:"efedrina"`
	Folhas         int64           `json:"folhas"`
	Embalagens     int64           `json:"embalagens"`
	Dinheiro       decimal.Decimal `json:"dinheiro"`
	ProofURL       string          `json:"proof_url,omitempty"`
	ProofExpiresAt *time.Time      `json:"proof_expires_at,omitempty"`
	MetaPaid       bool            `json:"meta_paid"`
	Manufactured   bool            `json:"manufactured"`
	ConfirmedFlag  bool            `json:"confirmed_flag"`
	Refused        bool            `json:"refused"`
	Confirmed      bool            `json:"confirmed"` // legacy mirror
	Status         string          `json:"status"`
	LastStatusBy   string          `json:"last_status_by,omitempty"`
	LastStatusName string          `json:"last_status_name,omitempty"`
	LastStatusAt   *time.Time      `json:"last_status_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toDepositDTO(d *deposits.Deposit) depositDTO {
	return depositDTO{
		ID:             d.ID,
		Code:           d.Code,
		CreatorUID:     d.CreatorUID,
		CreatorName:    d.CreatorName,
		ProductID:      d.ProductID,
		Efedrina:       d.Efedrina,
		Folhas:         d.Folhas,
		Embalagens:     d.Embalagens,
		Dinheiro:       d.Dinheiro,
		ProofURL:       d.ProofURL,
		ProofExpiresAt: d.ProofExpiresAt,
		MetaPaid:       d.Flags.MetaPaid,
		Manufactured:   d.Flags.Manufactured,
		ConfirmedFlag:  d.Flags.Confirmed,
		Refused:        d.Flags.Refused,
		Confirmed:      d.Confirmed,
		Status:         string(d.Flags.EffectiveStatus()),
		LastStatusBy:   d.LastStatusBy,
		LastStatusName: d.LastStatusName,
		LastStatusAt:   d.LastStatusAt,
		CreatedAt:      d.CreatedAt,
	}
}

type toggleResp struct {
	Deposit depositDTO `json:"deposit"`
	Warning string     `json:"warning,omitempty"`
}

type movementDTO struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason"`
	Qty         int64     `json:"qty"`
	ProductID   int64     `json:"product_id"`
	ContainerID *int64    `json:"container_id,omitempty"`
	Actor       actorDTO  `json:"actor"`
	Note        string    `json:"note,omitempty"`
	DepositID   *int64    `json:"deposit_id,omitempty"`
	PairID      *int64    `json:"pair_id,omitempty"`
}

func toMovementDTO(m ledger.Movement) movementDTO {
	return movementDTO{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		Type:        string(m.Type),
		Reason:      string(m.Reason),
		Qty:         m.Qty,
		ProductID:   m.ProductID,
		ContainerID: m.ContainerID,
		Actor:       actorDTO{UID: m.Actor.UID, Name: m.Actor.Name, Role: m.Actor.Role},
		Note:        m.Note,
		DepositID:   m.DepositID,
		PairID:      m.PairID,
	}
}

type namedDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type errResp struct {
	Error string `json:"error"`
}
