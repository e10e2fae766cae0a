package form

import (
	"context"
	"errors"
	"sync"

	"github.com/bancoplus/catalog/internal/products"
	"github.com/bancoplus/catalog/model"
)

// Status is the submission state of a form instance.
type Status string

const (
	StatusIdle             Status = "idle"
	StatusSubmitting       Status = "submitting"
	StatusSuccessDisplayed Status = "success_displayed"
	StatusErrorDisplayed   Status = "error_displayed"
)

// Mode selects between creating a new product and editing an existing one.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmitInFlight = errors.New("form: a submission is already in flight")

// Submission outcome messages.
const (
	MsgProductAdded   = "Product added successfully."
	MsgProductUpdated = "Product updated successfully."
	MsgMissingEditID  = "Missing product identifier for edit."
	MsgIDExists       = "This product ID already exists."
)

// WorkflowConfig wires a Workflow to its collaborators.
type WorkflowConfig struct {
	Mode Mode
	// ProductID is the edit target; required in edit mode.
	ProductID  string
	Repository products.Repository
	// Schema defaults to NewSchema when nil.
	Schema *Schema
	// OnAfterSuccess runs after a successful create or update. The caller
	// uses it to invalidate cached list data and navigate back; the
	// workflow holds no cache handle of its own. An error from the
	// callback surfaces as the submit error.
	OnAfterSuccess func(ctx context.Context) error
}

// Workflow owns one form instance's draft values and submission state.
// Submission runs its network calls sequentially; a second Submit during
// an in-flight one is rejected with ErrSubmitInFlight. The workflow never
// logs: every outcome is observable through its state accessors.
type Workflow struct {
	mode           Mode
	productID      string
	repo           products.Repository
	schema         *Schema
	onAfterSuccess func(ctx context.Context) error

	mu            sync.Mutex
	values        Values
	fieldErrors   FieldErrors
	submitError   string
	submitSuccess string
	status        Status
}

// NewWorkflow creates a Workflow in the idle state with empty defaults.
func NewWorkflow(cfg WorkflowConfig) *Workflow {
	schema := cfg.Schema
	if schema == nil {
		schema = NewSchema()
	}
	return &Workflow{
		mode:           cfg.Mode,
		productID:      cfg.ProductID,
		repo:           cfg.Repository,
		schema:         schema,
		onAfterSuccess: cfg.OnAfterSuccess,
		values:         Defaults(),
		status:         StatusIdle,
	}
}

// SetField records a user edit. Editing the release date re-derives the
// revision date synchronously: a strict date sets revision to release plus
// one year, anything else clears revision along with its errors. The
// derivation unconditionally overwrites manual revision edits.
func (w *Workflow) SetField(field, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch field {
	case FieldID:
		w.values.ID = value
	case FieldName:
		w.values.Name = value
	case FieldDescription:
		w.values.Description = value
	case FieldLogo:
		w.values.Logo = value
	case FieldDateRelease:
		w.values.DateRelease = value
		w.deriveRevisionLocked()
	case FieldDateRevision:
		w.values.DateRevision = value
	}
}

// deriveRevisionLocked applies the revision-date derivation rule. Callers
// must hold w.mu.
func (w *Workflow) deriveRevisionLocked() {
	release, err := parseStrictDate(w.values.DateRelease)
	if err != nil {
		w.values.DateRevision = ""
		w.removeFieldErrorLocked(FieldDateRevision)
		return
	}
	w.values.DateRevision = addOneYear(release).Format(products.DateLayout)
}

// Submit runs the submission pipeline: validate, trim, branch on mode,
// verify id collisions before create, and map any repository failure to a
// user-facing message. The only returned error is ErrSubmitInFlight; every
// other outcome lands in the workflow state.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.status == StatusSubmitting {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	w.status = StatusSubmitting
	w.submitError = ""
	w.submitSuccess = ""
	w.removeFieldErrorLocked(FieldID)
	draft := w.values
	w.mu.Unlock()

	normalized, fieldErrs := w.schema.Validate(draft)
	if len(fieldErrs) > 0 {
		// Not a submission failure: the draft stays editable.
		w.mu.Lock()
		w.fieldErrors = fieldErrs
		w.status = StatusIdle
		w.mu.Unlock()
		return nil
	}

	w.mu.Lock()
	w.fieldErrors = nil
	w.mu.Unlock()

	// Trim again in case a value slipped past validation with surrounding
	// whitespace intact.
	normalized = normalized.normalized()

	switch w.mode {
	case ModeEdit:
		if w.productID == "" {
			// Invariant violation of the calling context, not user input.
			w.finishError(MsgMissingEditID)
			return nil
		}
		_, err := w.repo.UpdateProduct(ctx, w.productID, products.Update{
			Name:         normalized.Name,
			Description:  normalized.Description,
			Logo:         normalized.Logo,
			DateRelease:  normalized.DateRelease,
			DateRevision: normalized.DateRevision,
		})
		if err != nil {
			w.finishError(model.UserMessage(err))
			return nil
		}
		w.finishSuccess(MsgProductUpdated, false)

	default: // ModeAdd
		exists, err := w.repo.VerifyProductID(ctx, normalized.ID)
		if err != nil {
			w.finishError(model.UserMessage(err))
			return nil
		}
		if exists {
			// Recoverable, field-level: no submit message in either
			// direction and no create call.
			w.mu.Lock()
			w.fieldErrors = append(w.fieldErrors, FieldError{Field: FieldID, Message: MsgIDExists})
			w.status = StatusIdle
			w.mu.Unlock()
			return nil
		}
		_, err = w.repo.CreateProduct(ctx, model.Product{
			ID:           normalized.ID,
			Name:         normalized.Name,
			Description:  normalized.Description,
			Logo:         normalized.Logo,
			DateRelease:  normalized.DateRelease,
			DateRevision: normalized.DateRevision,
		})
		if err != nil {
			w.finishError(model.UserMessage(err))
			return nil
		}
		w.finishSuccess(MsgProductAdded, true)
	}

	if w.onAfterSuccess != nil {
		if err := w.onAfterSuccess(ctx); err != nil {
			w.finishError(model.UserMessage(err))
		}
	}
	return nil
}

// Reset restores the form to the given value set (empty defaults when
// omitted), clearing all messages and validation errors.
func (w *Workflow) Reset(values ...Values) {
	v := Defaults()
	if len(values) > 0 {
		v = values[0]
	}
	w.mu.Lock()
	w.values = v
	w.fieldErrors = nil
	w.submitError = ""
	w.submitSuccess = ""
	w.status = StatusIdle
	w.mu.Unlock()
}

// Values returns the current draft.
func (w *Workflow) Values() Values {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values
}

// FieldErrors returns the current field-level violations.
func (w *Workflow) FieldErrors() FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append(FieldErrors(nil), w.fieldErrors...)
}

// SubmitError returns the submit-level error message, empty when none.
func (w *Workflow) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitError
}

// SubmitSuccess returns the submit-level success message, empty when none.
func (w *Workflow) SubmitSuccess() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitSuccess
}

// Status returns the current submission state.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Workflow) finishError(msg string) {
	w.mu.Lock()
	w.submitError = msg
	w.status = StatusErrorDisplayed
	w.mu.Unlock()
}

func (w *Workflow) finishSuccess(msg string, resetValues bool) {
	w.mu.Lock()
	w.submitSuccess = msg
	if resetValues {
		w.values = Defaults()
		w.fieldErrors = nil
	}
	w.status = StatusSuccessDisplayed
	w.mu.Unlock()
}

// removeFieldErrorLocked drops all violations recorded for a field.
// Callers must hold w.mu.
func (w *Workflow) removeFieldErrorLocked(field string) {
	if len(w.fieldErrors) == 0 {
		return
	}
	kept := w.fieldErrors[:0]
	for _, fe := range w.fieldErrors {
		if fe.Field != field {
			kept = append(kept, fe)
		}
	}
	w.fieldErrors = kept
}
