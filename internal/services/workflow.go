package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"nps/internal/models/db_models"
	"nps/pkg/utils"
)

const (
	DefaultApprovalComment = "Aprovado sem comentário"

	minResolutionLen = 5
	minRejectionLen  = 5
)

// ApplyResolve records the operational answer. Resolving again overwrites
// the previous text, even after a decision.
func ApplyResolve(e *db_models.Evaluation, text string, now time.Time) error {
	if err := checkResolutionText(text); err != nil {
		return err
	}

	e.ResolutionText = strings.TrimSpace(text)
	e.ResolutionState = db_models.ResolutionResolved
	e.UpdatedAt = now
	return e.Validate()
}

// ApplyApprove accepts the resolution. A blank comment is replaced by
// DefaultApprovalComment.
func ApplyApprove(e *db_models.Evaluation, comment string, now time.Time) error {
	if err := checkDecidable(e); err != nil {
		return err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		comment = DefaultApprovalComment
	}

	e.ApprovalState = db_models.ApprovalApproved
	e.ApprovalComment = &comment
	e.RejectionReason = nil
	e.UpdatedAt = now
	return e.Validate()
}

// ApplyReject refuses the resolution with a reason.
func ApplyReject(e *db_models.Evaluation, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) < minRejectionLen {
		return utils.NewValidationError("reason",
			fmt.Sprintf("rejection reason must have at least %d characters", minRejectionLen))
	}
	if err := checkDecidable(e); err != nil {
		return err
	}

	e.ApprovalState = db_models.ApprovalRejected
	e.RejectionReason = &reason
	e.ApprovalComment = nil
	e.UpdatedAt = now
	return e.Validate()
}

func checkResolutionText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minResolutionLen {
		return utils.NewValidationError("text",
			fmt.Sprintf("resolution text must have at least %d characters", minResolutionLen))
	}
	return nil
}

func checkDecidable(e *db_models.Evaluation) error {
	if e.ResolutionState != db_models.ResolutionResolved {
		return utils.NewInvalidStateError("evaluation must be resolved first")
	}
	if e.ApprovalState != db_models.ApprovalPending {
		return utils.NewInvalidStateError(fmt.Sprintf("evaluation already %s", e.ApprovalState))
	}
	return nil
}
