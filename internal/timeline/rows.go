package timeline

import (
	"time"

	"github.com/s21platform/chat-feed/internal/model"
)

// BuildRows sizes groups for a windowed list. The first group and every group
// starting on a different calendar day in loc than the previous one get a date divider.
func BuildRows(groups []model.Group, estimator *Estimator, loc *time.Location) []model.Row {
	if loc == nil {
		loc = time.Local
	}

	rows := make([]model.Row, 0, len(groups))
	for i, group := range groups {
		divider := i == 0 || !sameDay(groups[i-1].LatestTimestamp, group.StartTimestamp, loc)
		rows = append(rows, model.Row{
			Group:       group,
			DateDivider: divider,
			Height:      estimator.Estimate(group, divider),
		})
	}
	return rows
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Builder turns the message list of a feed into rows.
type Builder struct {
	selfID    string
	estimator *Estimator
	loc       *time.Location
}

func NewBuilder(selfID string, estimator *Estimator, loc *time.Location) *Builder {
	return &Builder{
		selfID:    selfID,
		estimator: estimator,
		loc:       loc,
	}
}

func (b *Builder) Rows(messages []model.Message) []model.Row {
	return BuildRows(Group(messages, b.selfID), b.estimator, b.loc)
}
