package gig

// Gig - запись о подработке в том виде, в котором её отдаёт источник данных.
// Даты остаются строками: разбор и классификация живут в gigstatus.
type Gig struct {
	ID          string `json:"id" yaml:"id" db:"id" validate:"required"`
	Description string `json:"description" yaml:"description" db:"description" validate:"required"`
	Pay         string `json:"pay" yaml:"pay" db:"pay"`
	Location    string `json:"location" yaml:"location" db:"location"`
	PostedDate  string `json:"posted_date" yaml:"postedDate" db:"posted_date" validate:"required"`
	Deadline    string `json:"deadline,omitempty" yaml:"deadline,omitempty" db:"deadline"`
	Status      string `json:"status" yaml:"status" db:"status"`
}

// ярлыки, которые авторы обычно ставят на гиги
const (
	LabelNew    = "NEW"
	LabelUrgent = "Urgent"
	LabelOpen   = "OPEN"
)

// HasDeadline сообщает, задан ли дедлайн вообще
func (g Gig) HasDeadline() bool {
	return g.Deadline != ""
}
