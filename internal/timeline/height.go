package timeline

import (
	"unicode/utf8"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

// Estimator predicts row heights in pixels from text length. It rounds up
// wherever it has to guess.
type Estimator struct {
	layout config.Layout
}

func NewEstimator(layout config.Layout) *Estimator {
	if layout.CharsPerLine <= 0 {
		layout.CharsPerLine = 1
	}
	return &Estimator{layout: layout}
}

// Estimate returns the height of a group row, withDivider adding the date
// divider block above it. Never below Layout.MinRowHeight.
func (e *Estimator) Estimate(group model.Group, withDivider bool) int {
	l := e.layout

	height := l.AvatarHeight + l.GroupMargin
	if group.IsOwnSender {
		height += l.TimestampHeight
	} else {
		height += l.SenderNameHeight
	}
	if withDivider {
		height += l.DateDividerHeight
	}

	for i, msg := range group.Messages {
		if i > 0 {
			height += l.BubbleGap
		}
		height += e.bubble(msg.Text)
	}

	if height < l.MinRowHeight {
		return l.MinRowHeight
	}
	return height
}

func (e *Estimator) bubble(text string) int {
	l := e.layout

	chars := utf8.RuneCountInString(text)
	lines := (chars + l.CharsPerLine - 1) / l.CharsPerLine
	height := lines*l.LineHeight + l.VerticalPadding
	if height < l.MinBubbleHeight {
		return l.MinBubbleHeight
	}
	return height
}
