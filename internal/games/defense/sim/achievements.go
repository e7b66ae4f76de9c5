package sim

// Milestone is the counter an achievement is measured against.
type Milestone int

const (
	MilestoneKills Milestone = iota
	MilestoneTowers
	MilestoneWave // highest wave completed in the current run
)

// Achievement is a one-time award for reaching Threshold on a milestone.
type Achievement struct {
	ID        string
	Name      string
	Milestone Milestone
	Threshold int
}

var achievementTable = []Achievement{
	{ID: "first_blood", Name: "First Blood", Milestone: MilestoneKills, Threshold: 10},
	{ID: "slayer", Name: "Slayer", Milestone: MilestoneKills, Threshold: 50},
	{ID: "massacre", Name: "Massacre", Milestone: MilestoneKills, Threshold: 100},
	{ID: "builder", Name: "Builder", Milestone: MilestoneTowers, Threshold: 5},
	{ID: "architect", Name: "Architect", Milestone: MilestoneTowers, Threshold: 15},
	{ID: "survivor", Name: "Survivor", Milestone: MilestoneWave, Threshold: 5},
	{ID: "veteran", Name: "Veteran", Milestone: MilestoneWave, Threshold: 10},
	{ID: "legend", Name: "Legend", Milestone: MilestoneWave, Threshold: 20},
}

// AllAchievements returns every achievement in display order.
func AllAchievements() []Achievement {
	out := make([]Achievement, len(achievementTable))
	copy(out, achievementTable)
	return out
}

// Achievements unlocks awards from the event stream. Kill and tower counts
// restart on GameReset; unlocked awards stay unlocked.
type Achievements struct {
	kills    int
	towers   int
	unlocked []Achievement
	onUnlock func(Achievement)
}

// NewAchievements returns a listener that calls onUnlock, if non-nil,
// once for each newly unlocked award.
func NewAchievements(onUnlock func(Achievement)) *Achievements {
	return &Achievements{onUnlock: onUnlock}
}

// Listen is a Listener.
func (a *Achievements) Listen(ev Event) {
	switch ev.Kind {
	case EventGameReset:
		a.kills, a.towers = 0, 0
	case EventEnemyKilled:
		a.kills++
		a.check(MilestoneKills, a.kills)
	case EventTowerBuilt:
		a.towers++
		a.check(MilestoneTowers, a.towers)
	case EventWaveCompleted:
		a.check(MilestoneWave, ev.Value)
	}
}

func (a *Achievements) check(m Milestone, count int) {
	for _, ach := range achievementTable {
		if ach.Milestone != m || count < ach.Threshold || a.Has(ach.ID) {
			continue
		}
		a.unlocked = append(a.unlocked, ach)
		if a.onUnlock != nil {
			a.onUnlock(ach)
		}
	}
}

// Has reports whether the award with the given id is unlocked.
func (a *Achievements) Has(id string) bool {
	for _, ach := range a.unlocked {
		if ach.ID == id {
			return true
		}
	}
	return false
}

// Unlocked returns the unlocked awards in unlock order.
func (a *Achievements) Unlocked() []Achievement {
	out := make([]Achievement, len(a.unlocked))
	copy(out, a.unlocked)
	return out
}
