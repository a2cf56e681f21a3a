package db_models

import (
	"errors"
	"fmt"
)

type ResolutionState string

const (
	ResolutionPending  ResolutionState = "pending"
	ResolutionResolved ResolutionState = "resolved"
)

type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

const (
	MinScore = 0
	MaxScore = 10
)

var ErrEvaluationInvariant = errors.New("evaluation invariant violated")

// Evaluation is a customer rating with two independent sub-states: the
// operational resolution and the administrative decision on it. The decision
// may only leave pending once the resolution is resolved.
type Evaluation struct {
	BaseModel
	CompanyID  int64    `gorm:"not null;index"`
	Company    *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	EmployeeID *int64   `gorm:"index"`
	Employee   *User    `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL"`

	Score           int     `gorm:"not null;check:chk_evaluations_score,score >= 0 AND score <= 10"`
	CustomerComment *string `gorm:"type:text"`
	CustomerName    *string `gorm:"size:255"`
	CustomerEmail   *string `gorm:"size:255"`

	ResolutionText  string          `gorm:"type:text;not null;default:''"`
	ResolutionState ResolutionState `gorm:"size:16;not null;default:'pending';index;check:chk_evaluations_resolution_state,resolution_state IN ('pending','resolved')"`
	ApprovalState   ApprovalState   `gorm:"size:16;not null;default:'pending';index;check:chk_evaluations_approval_gate,approval_state IN ('pending','approved','rejected') AND (approval_state = 'pending' OR resolution_state = 'resolved')"`
	ApprovalComment *string         `gorm:"type:text;check:chk_evaluations_decision_fields,(approval_state = 'pending' AND approval_comment IS NULL AND rejection_reason IS NULL) OR (approval_state = 'approved' AND approval_comment IS NOT NULL AND rejection_reason IS NULL) OR (approval_state = 'rejected' AND rejection_reason IS NOT NULL AND approval_comment IS NULL)"`
	RejectionReason *string         `gorm:"type:text"`
}

// Validate checks the cross-field invariants. It runs before every write.
func (e *Evaluation) Validate() error {
	if e.Score < MinScore || e.Score > MaxScore {
		return fmt.Errorf("%w: score %d out of range", ErrEvaluationInvariant, e.Score)
	}

	switch e.ResolutionState {
	case ResolutionPending, ResolutionResolved:
	default:
		return fmt.Errorf("%w: unknown resolution state %q", ErrEvaluationInvariant, e.ResolutionState)
	}

	switch e.ApprovalState {
	case ApprovalPending:
		if e.ApprovalComment != nil || e.RejectionReason != nil {
			return fmt.Errorf("%w: pending decision carries decision fields", ErrEvaluationInvariant)
		}
		return nil
	case ApprovalApproved:
		if e.ApprovalComment == nil || e.RejectionReason != nil {
			return fmt.Errorf("%w: approved needs a comment and no rejection reason", ErrEvaluationInvariant)
		}
	case ApprovalRejected:
		if e.RejectionReason == nil || e.ApprovalComment != nil {
			return fmt.Errorf("%w: rejected needs a reason and no approval comment", ErrEvaluationInvariant)
		}
	default:
		return fmt.Errorf("%w: unknown approval state %q", ErrEvaluationInvariant, e.ApprovalState)
	}

	if e.ResolutionState != ResolutionResolved {
		return fmt.Errorf("%w: decision %q before resolution", ErrEvaluationInvariant, e.ApprovalState)
	}
	return nil
}

func (e *Evaluation) IsDecided() bool {
	return e.ApprovalState != ApprovalPending
}
