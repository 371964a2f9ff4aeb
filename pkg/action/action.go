// Package action classifies a reconciled contractor into the workflow step
// that should follow: onboarding a new contractor, re-activating an
// existing one, asking for a questionnaire and so on.
package action

import (
	"strings"
	"time"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Action is a workflow step.
type Action string

// Actions.
const (
	MissingInfo           Action = "missing_info"
	AssociationFee        Action = "association_fee"
	ActivationLink        Action = "activation_link"
	AlreadyQualified      Action = "already_qualified"
	FollowUpQualification Action = "follow_up_qualification"
	RestoreSuspended      Action = "restore_suspended"
	AddQuestionnaire      Action = "add_questionnaire"
	AmbiguousOnboarding   Action = "ambiguous_onboarding"
	Onboarding            Action = "onboarding"
	ReOnboarding          Action = "re_onboarding"
	SubscriptionUpgrade   Action = "subscription_upgrade"
)

// All returns every action in output sheet order.
func All() []Action {
	return []Action{
		Onboarding, AssociationFee, ReOnboarding, SubscriptionUpgrade,
		AmbiguousOnboarding, RestoreSuspended, ActivationLink, AlreadyQualified,
		AddQuestionnaire, MissingInfo, FollowUpQualification,
	}
}

// String implements fmt.Stringer.
func (a Action) String() string { return string(a) }

// Valid reports whether a is one of All.
func (a Action) Valid() bool {
	for _, known := range All() {
		if a == known {
			return true
		}
	}
	return false
}

// Match is what the classifier needs to know about a matched entity.
type Match struct {
	RegistrationStatus string
	InRelationship     bool
	Qualified          bool
}

// Input gathers everything Classify decides on.
type Input struct {
	// Create is set when the contractor must be created in the registry.
	Create bool

	Record records.HiringClientRecord

	// Match is nil when no entity was matched.
	Match *Match

	// Ambiguous is the record's ambiguous flag, possibly raised by matching.
	Ambiguous bool

	SubscriptionUpgrade bool

	// Expiration is the matched entity's qualification expiration, if any.
	Expiration *time.Time

	// Now is the reference time of the 60-day association-fee window.
	Now time.Time

	// IgnoreWarnings lets an unknown registration status on a take-over
	// fall back to an activation link.
	IgnoreWarnings bool
}

// Classify returns the action for in. It fails with a *errors.DataError when
// an existing entity has a registration status it cannot act on, and with a
// *errors.ValidationError when an existing-entity decision has no match.
func Classify(in Input) (Action, error) {
	if in.Create && !in.Record.MandatoryProvided() {
		return MissingInfo, nil
	}

	if a, ok := associationFee(in); ok {
		return a, nil
	}

	if in.Create {
		return classifyCreate(in), nil
	}
	return classifyExisting(in)
}

// associationFee applies to association-fee records matched to an Active or
// Non Member entity outside any relationship.
func associationFee(in Input) (Action, bool) {
	if !in.Record.AssociationFee() || in.Match == nil || in.Match.InRelationship {
		return "", false
	}
	switch status(in.Match) {
	case records.StatusActive, records.StatusNonMember:
		return feeWindow(in), true
	}
	return "", false
}

// feeWindow charges an association fee unless the current qualification
// expires within the window, in which case a questionnaire is enough.
func feeWindow(in Input) Action {
	if in.Expiration == nil || in.Expiration.After(in.Now.Add(constants.AssociationFeeWindow)) {
		return AssociationFee
	}
	return AddQuestionnaire
}

func classifyCreate(in Input) Action {
	switch {
	case in.Record.TakeOver():
		return ActivationLink
	case in.Match != nil && in.Match.InRelationship:
		switch status(in.Match) {
		case records.StatusActive:
			return qualification(in.Match)
		case records.StatusSuspended:
			return RestoreSuspended
		default:
			return AddQuestionnaire
		}
	case in.Ambiguous:
		return AmbiguousOnboarding
	case in.Record.MandatoryProvided():
		return Onboarding
	default:
		return MissingInfo
	}
}

func classifyExisting(in Input) (Action, error) {
	if in.Match == nil {
		return "", errors.NewValidationError("match", nil, "an existing contractor needs a matched registry entity")
	}
	st := status(in.Match)

	if in.Record.TakeOver() {
		switch st {
		case records.StatusSuspended:
			return RestoreSuspended, nil
		case records.StatusActive:
			return AddQuestionnaire, nil
		case records.StatusNonMember:
			return ActivationLink, nil
		}
		if in.IgnoreWarnings {
			return ActivationLink, nil
		}
		return "", unknownStatus(in)
	}

	switch st {
	case records.StatusActive:
		switch {
		case in.Match.InRelationship:
			return qualification(in.Match), nil
		case in.SubscriptionUpgrade:
			return SubscriptionUpgrade, nil
		case in.Record.AssociationFee():
			return feeWindow(in), nil
		default:
			return AddQuestionnaire, nil
		}
	case records.StatusSuspended:
		return RestoreSuspended, nil
	case records.StatusNonMember, "":
		return ReOnboarding, nil
	}
	return "", unknownStatus(in)
}

func qualification(m *Match) Action {
	if m.Qualified {
		return AlreadyQualified
	}
	return FollowUpQualification
}

// status canonicalizes the registration status of m.
func status(m *Match) string {
	s := strings.TrimSpace(m.RegistrationStatus)
	for _, known := range []string{records.StatusActive, records.StatusSuspended, records.StatusNonMember} {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return s
}

func unknownStatus(in Input) error {
	return errors.NewDataError(in.Record.Index, "registration_status", in.Match.RegistrationStatus,
		"unknown registration status")
}
