package appointment

// Service represents a bookable salon service.
// Read-only to the calendar: it supplies the default duration used
// whenever an appointment carries no override.
type Service struct {
	ID       int64
	Name     string
	Duration int // minutes
	Price    float64
}

// Stylist represents a hairstylist, rendered as a grid column.
type Stylist struct {
	ID    int64
	Name  string
	Color string // hex accent used for this stylist's blocks, may be empty
}

// Client is the person an appointment is booked for.
type Client struct {
	ID    int64
	Name  string
	Phone string
	Email string
}

// ServiceIndex builds an id lookup for services.
func ServiceIndex(services []*Service) map[int64]*Service {
	idx := make(map[int64]*Service, len(services))
	for _, s := range services {
		if s != nil {
			idx[s.ID] = s
		}
	}
	return idx
}
