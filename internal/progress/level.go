package progress

// Level is one band of the level table.
type Level struct {
	Number    int
	Name      string
	MinPoints int
	MaxPoints int // -1 for the open-ended top band
	Icon      string
}

// PointsPerLevel is the width of every band below the top level.
const PointsPerLevel = 100

var levels = []Level{
	{1, "Beginner", 0, 99, "🌱"},
	{2, "Novice", 100, 199, "📚"},
	{3, "Learner", 200, 299, "🎓"},
	{4, "Explorer", 300, 399, "🔍"},
	{5, "Achiever", 400, 499, "🏆"},
	{6, "Expert", 500, 599, "⭐"},
	{7, "Master", 600, 699, "👑"},
	{8, "Virtuoso", 700, 799, "💎"},
	{9, "Champion", 800, 899, "🏅"},
	{10, "Legend", 900, -1, "🔥"},
}

// MaxLevel is the highest level number.
const MaxLevel = 10

// Levels returns the level table in ascending order.
func Levels() []Level {
	return append([]Level(nil), levels...)
}

// LevelFor returns the level band containing points.
func LevelFor(points int) Level {
	for i := len(levels) - 1; i >= 0; i-- {
		if points >= levels[i].MinPoints {
			return levels[i]
		}
	}
	return levels[0]
}

// LevelProgress describes how far a learner is through the current level.
type LevelProgress struct {
	Current      Level
	Next         Level
	Percent      float64
	PointsToNext int
	IsMax        bool
}

// ProgressFor computes level progress at points.
func ProgressFor(points int) LevelProgress {
	cur := LevelFor(points)
	next := cur
	if cur.Number < MaxLevel {
		next = levels[cur.Number]
	}

	p := LevelProgress{Current: cur, Next: next, Percent: 100, IsMax: cur.Number == MaxLevel}
	if span := next.MinPoints - cur.MinPoints; span > 0 {
		p.Percent = min(float64(points-cur.MinPoints)/float64(span)*100, 100)
	}
	p.PointsToNext = max(0, next.MinPoints-points)
	return p
}

// Grade maps an accuracy percentage to a letter grade.
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "A+"
	case accuracy >= 80:
		return "A"
	case accuracy >= 70:
		return "B"
	case accuracy >= 60:
		return "C"
	case accuracy >= 50:
		return "D"
	default:
		return "F"
	}
}
