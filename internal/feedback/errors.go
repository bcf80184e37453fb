package feedback

import (
	"fmt"

	"github.com/jonathan/interview-scorecard/internal/types"
)

// ErrSkillNotOnForm is returned when rating a skill the form does not list. List is
// set when the skill was posted under a job list it does not belong to.
type ErrSkillNotOnForm struct {
	SkillID int64
	List    types.SkillType
}

func (e *ErrSkillNotOnForm) Error() string {
	if e.List != "" {
		return fmt.Sprintf("skill %d is not a %s skill for this job", e.SkillID, e.List)
	}
	return fmt.Sprintf("skill %d is not on the review form", e.SkillID)
}

// ErrUnknownSkill is returned when a submission references a skill missing from the catalog.
type ErrUnknownSkill struct {
	SkillID int64
}

func (e *ErrUnknownSkill) Error() string {
	return fmt.Sprintf("skill %d does not exist", e.SkillID)
}

// ErrRepeatedSkill is returned when a submission lists the same skill more than once.
type ErrRepeatedSkill struct {
	SkillID int64
}

func (e *ErrRepeatedSkill) Error() string {
	return fmt.Sprintf("skill %d is listed more than once", e.SkillID)
}

// ErrDuplicateExtraSkill is returned when a submission lists a job skill as an extra skill.
type ErrDuplicateExtraSkill struct {
	SkillID int64
}

func (e *ErrDuplicateExtraSkill) Error() string {
	return fmt.Sprintf("skill %d is already a required or preferred skill for this job", e.SkillID)
}
