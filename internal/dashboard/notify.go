package dashboard

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	ClassNotification = "notification"
	classExiting      = "notification exiting"

	defaultDisplayFor = 3000 * time.Millisecond
	defaultExitFor    = 300 * time.Millisecond
)

func colorFor(severity Severity) string {
	switch severity {
	case SeverityError:
		return "#e74c3c"
	case SeveritySuccess:
		return "#2ecc71"
	default:
		return "#3498db"
	}
}

// Presenter shows transient toast notifications on a page. Each Show
// attaches a fresh element; concurrent notifications stack and dismiss
// independently, there is no dedup or queuing.
type Presenter struct {
	page *Page

	// DisplayFor and ExitFor default to the 3000ms/300ms contract;
	// tests shorten them.
	DisplayFor time.Duration
	ExitFor    time.Duration
}

func NewPresenter(page *Page) *Presenter {
	return &Presenter{page: page, DisplayFor: defaultDisplayFor, ExitFor: defaultExitFor}
}

// Show attaches a notification and schedules its dismissal: after
// DisplayFor it enters the exit phase, after ExitFor more it is removed
// from the page entirely. Unknown severities fall back to info.
func (p *Presenter) Show(message string, severity Severity) *Element {
	switch severity {
	case SeverityInfo, SeveritySuccess, SeverityError:
	default:
		severity = SeverityInfo
	}

	el := &Element{
		Class: ClassNotification,
		Text:  message,
		Color: colorFor(severity),
	}
	p.page.Append(el)

	time.AfterFunc(p.DisplayFor, func() {
		p.page.SetClass(el, classExiting)
		time.AfterFunc(p.ExitFor, func() {
			p.page.Remove(el)
		})
	})
	return el
}
