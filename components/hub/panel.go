package hub

// Step is the visible stage of the panel.
type Step string

const (
	StepClosed   Step = "closed"
	StepChannels Step = "step1"
	StepContact  Step = "step2"
	StepSuccess  Step = "step3"
)

// stepSubmitting keys transitions that apply while a submission is in flight.
const stepSubmitting Step = "submitting"

// ActionKind names an input to the panel state machine.
type ActionKind string

const (
	ActionToggle  ActionKind = "toggle"
	ActionClose   ActionKind = "close"
	ActionSelect  ActionKind = "select"
	ActionBack    ActionKind = "back"
	ActionInput   ActionKind = "input"
	ActionMessage ActionKind = "message"
	ActionSubmit  ActionKind = "submit"
	ActionSucceed ActionKind = "succeed"
	ActionFail    ActionKind = "fail"
	ActionReset   ActionKind = "reset"
)

// Op is a primitive state update. Transitions are lists of ops so the same
// table can drive every runtime that hosts the panel.
type Op string

const (
	OpClearDrafts   Op = "clearDrafts"
	OpBumpAttempt   Op = "bumpAttempt"
	OpSelectChannel Op = "selectChannel"
	OpSetContact    Op = "setContact"
	OpSetMessage    Op = "setMessage"
	OpValidate      Op = "validate"
	OpBeginSubmit   Op = "beginSubmit"
	OpCheckAttempt  Op = "checkAttempt"
	OpEndSubmit     Op = "endSubmit"
	OpSetError      Op = "setError"
)

// Transition moves the panel from one step to another when an action arrives.
type Transition struct {
	From Step       `json:"from"`
	On   ActionKind `json:"on"`
	To   Step       `json:"to"`
	Ops  []Op       `json:"ops"`
}

var closeOps = []Op{OpClearDrafts, OpBumpAttempt}

var transitionTable = []Transition{
	{From: StepClosed, On: ActionToggle, To: StepChannels, Ops: []Op{OpClearDrafts}},

	{From: StepChannels, On: ActionToggle, To: StepClosed, Ops: closeOps},
	{From: StepChannels, On: ActionClose, To: StepClosed, Ops: closeOps},
	{From: StepChannels, On: ActionSelect, To: StepContact, Ops: []Op{OpSelectChannel}},

	{From: StepContact, On: ActionToggle, To: StepClosed, Ops: closeOps},
	{From: StepContact, On: ActionClose, To: StepClosed, Ops: closeOps},
	{From: StepContact, On: ActionBack, To: StepChannels, Ops: []Op{OpClearDrafts}},
	{From: StepContact, On: ActionInput, To: StepContact, Ops: []Op{OpSetContact}},
	{From: StepContact, On: ActionMessage, To: StepContact, Ops: []Op{OpSetMessage}},
	{From: StepContact, On: ActionSubmit, To: StepContact, Ops: []Op{OpValidate, OpBeginSubmit}},

	{From: stepSubmitting, On: ActionToggle, To: StepClosed, Ops: closeOps},
	{From: stepSubmitting, On: ActionClose, To: StepClosed, Ops: closeOps},
	{From: stepSubmitting, On: ActionSucceed, To: StepSuccess, Ops: []Op{OpCheckAttempt, OpEndSubmit}},
	{From: stepSubmitting, On: ActionFail, To: StepContact, Ops: []Op{OpCheckAttempt, OpEndSubmit, OpSetError}},

	{From: StepSuccess, On: ActionToggle, To: StepClosed, Ops: closeOps},
	{From: StepSuccess, On: ActionClose, To: StepClosed, Ops: closeOps},
	{From: StepSuccess, On: ActionReset, To: StepChannels, Ops: []Op{OpClearDrafts}},
}

// Transitions returns a copy of the panel transition table.
func Transitions() []Transition {
	out := make([]Transition, len(transitionTable))
	for i, t := range transitionTable {
		t.Ops = append([]Op(nil), t.Ops...)
		out[i] = t
	}
	return out
}

// PanelState is the full state of one panel instance.
type PanelState struct {
	Step       Step        `json:"step"`
	Channel    ChannelType `json:"channel"`
	Contact    string      `json:"contact"`
	Message    string      `json:"message"`
	Submitting bool        `json:"submitting"`
	Error      string      `json:"error"`
	Attempt    int         `json:"attempt"`
}

// InitialPanelState is the closed panel.
func InitialPanelState() PanelState {
	return PanelState{Step: StepClosed}
}

// Action is one input to Reduce. Value carries typed text for input and
// message actions and the error text for fail. Attempt tags submission
// results with the submission they answer.
type Action struct {
	Kind    ActionKind  `json:"kind"`
	Channel ChannelType `json:"channel,omitempty"`
	Value   string      `json:"value,omitempty"`
	Attempt int         `json:"attempt,omitempty"`
}

// Effect asks the host to perform a submission. Contact is already formatted.
type Effect struct {
	Submit  bool        `json:"submit"`
	Attempt int         `json:"attempt"`
	Channel ChannelType `json:"channel"`
	Contact string      `json:"contact"`
	Message string      `json:"message"`
}

// PanelCopy holds the user facing strings of the panel runtime.
type PanelCopy struct {
	ContactRequired    string `json:"contactRequired"`
	MessageRequired    string `json:"messageRequired"`
	SubmitFailed       string `json:"submitFailed"`
	NetworkFailed      string `json:"networkFailed"`
	APIFailed          string `json:"apiFailed"`
	NotConfigured      string `json:"notConfigured"`
	Submit             string `json:"submit"`
	Back               string `json:"back"`
	ContactHeading     string `json:"contactHeading"`
	MessagePlaceholder string `json:"messagePlaceholder"`
	SuccessTitle       string `json:"successTitle"`
	SuccessBody        string `json:"successBody"`
	SendAnother        string `json:"sendAnother"`
	EmptyChannels      string `json:"emptyChannels"`
}

// DefaultPanelCopy returns the stock English copy.
func DefaultPanelCopy() PanelCopy {
	return PanelCopy{
		ContactRequired:    "Please enter your contact info",
		MessageRequired:    "Please enter a message",
		SubmitFailed:       "Something went wrong. Please try again.",
		NetworkFailed:      "Network error. Please try again.",
		APIFailed:          "Failed to send message to Telegram",
		NotConfigured:      "The contact form is not configured yet.",
		Submit:             "Submit Now",
		Back:               "Back",
		ContactHeading:     "Your contact",
		MessagePlaceholder: DefaultMessagePlaceholder,
		SuccessTitle:       "Message Sent!",
		SuccessBody:        "Our team has been notified. We'll be in touch very soon.",
		SendAnother:        "Send Another",
		EmptyChannels:      "Enable channels in the editor to see them here.",
	}
}

// Reduce applies action to state. Actions with no matching transition leave
// the state untouched, which is how double submits, typing while submitting
// and late responses after a close are ignored.
func Reduce(cfg WidgetConfig, state PanelState, action Action) (PanelState, Effect) {
	return reduceWith(DefaultPanelCopy(), cfg, state, action)
}

func reduceWith(text PanelCopy, cfg WidgetConfig, state PanelState, action Action) (PanelState, Effect) {
	transition, ok := findTransition(state, action.Kind)
	if !ok {
		return state, Effect{}
	}
	next := state
	var effect Effect
	for _, op := range transition.Ops {
		switch op {
		case OpClearDrafts:
			next.Channel = ""
			next.Contact = ""
			next.Message = ""
			next.Error = ""
			next.Submitting = false
		case OpBumpAttempt:
			next.Attempt++
		case OpSelectChannel:
			next.Channel = action.Channel
			next.Contact = SeedValue(action.Channel)
			next.Message = ""
			next.Error = ""
		case OpSetContact:
			next.Contact = FieldValue(next.Channel, action.Value)
		case OpSetMessage:
			next.Message = action.Value
		case OpValidate:
			if msg := validateDraft(text, cfg, next); msg != "" {
				next.Error = msg
				return next, Effect{}
			}
		case OpBeginSubmit:
			next.Submitting = true
			next.Error = ""
			next.Attempt++
			effect = Effect{
				Submit:  true,
				Attempt: next.Attempt,
				Channel: next.Channel,
				Contact: FormatFinalValue(next.Channel, next.Contact),
				Message: TrimBlank(next.Message),
			}
			if !cfg.MessageRequired() {
				effect.Message = ""
			}
		case OpCheckAttempt:
			if action.Attempt != next.Attempt {
				return state, Effect{}
			}
		case OpEndSubmit:
			next.Submitting = false
		case OpSetError:
			next.Error = action.Value
			if next.Error == "" {
				next.Error = text.SubmitFailed
			}
		}
	}
	next.Step = transition.To
	return next, effect
}

func findTransition(state PanelState, kind ActionKind) (Transition, bool) {
	from := state.Step
	if state.Submitting {
		from = stepSubmitting
	}
	for _, t := range transitionTable {
		if t.From == from && t.On == kind {
			return t, true
		}
	}
	return Transition{}, false
}

func validateDraft(text PanelCopy, cfg WidgetConfig, state PanelState) string {
	if ContactMissing(state.Channel, state.Contact) {
		return text.ContactRequired
	}
	if cfg.MessageRequired() && TrimBlank(state.Message) == "" {
		return text.MessageRequired
	}
	return ""
}
