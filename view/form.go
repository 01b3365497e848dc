package view

import (
	"context"
	"errors"
	"sync"

	"todo-web/models"
	"todo-web/store"
)

// RequiredFieldsMessage is shown when a submission misses a required field.
const RequiredFieldsMessage = "Please fill in all required fields."

type FormState int

const (
	FormHidden FormState = iota
	FormVisible
)

func (s FormState) String() string {
	if s == FormVisible {
		return "visible"
	}
	return "hidden"
}

// Form is the new-task form. Hidden -> Visible on Open, Visible -> Hidden on
// Cancel or a successful Submit, Visible -> Visible on a failed Submit.
type Form struct {
	mu      sync.Mutex
	state   FormState
	values  models.NewTaskInput
	message string
}

// FormSnapshot is what the page renders for the form.
type FormSnapshot struct {
	Visible bool
	Values  models.NewTaskInput
	Message string
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormVisible
	f.message = ""
}

func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Snapshot returns the form for rendering. The validation message is handed
// out once; later snapshots carry no message until the next failed Submit.
func (f *Form) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := FormSnapshot{Visible: f.state == FormVisible, Values: f.values, Message: f.message}
	f.message = ""
	return snap
}

// Submit sends an add command. Validation failures are kept on the form and
// reported through the returned error; other failures leave the form as it was.
func (f *Form) Submit(ctx context.Context, d store.Dispatcher, input models.NewTaskInput) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := d.Dispatch(ctx, store.Command{Kind: store.CommandAdd, Input: input})
	if errors.Is(err, models.ErrValidation) {
		f.state = FormVisible
		f.values = input
		f.message = RequiredFieldsMessage
		return models.Task{}, err
	}
	if err != nil {
		return models.Task{}, err
	}
	f.reset()
	return *res.Task, nil
}

func (f *Form) reset() {
	f.state = FormHidden
	f.values = models.NewTaskInput{}
	f.message = ""
}

// SortMenu is the sort dropdown. Any action other than its own button closes it.
type SortMenu struct {
	mu   sync.Mutex
	open bool
}

func (m *SortMenu) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
}

func (m *SortMenu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

func (m *SortMenu) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
