package model

// Day 行程中的一天
type Day struct {
	Day        int      `json:"day" validate:"required,min=1"`
	Date       string   `json:"date" validate:"required"`
	City       string   `json:"city"`
	Title      string   `json:"title" validate:"required"`
	Activities []string `json:"activities"`
	Hotel      string   `json:"hotel,omitempty"`     // 当晚酒店 ID
	Locations  []string `json:"locations,omitempty"` // 当天参观的地点 ID
}

// Catalog 地点目录 (itinerary_locations.json)
type Catalog struct {
	Hotels               []Location `json:"hotels" validate:"dive"`
	BrisbaneAttractions  []Location `json:"brisbane_attractions" validate:"dive"`
	GoldCoastAttractions []Location `json:"gold_coast_attractions" validate:"dive"`
	DailyItinerary       []Day      `json:"daily_itinerary" validate:"dive"`

	byID  map[string]*Location
	byDay map[int]*Day
}

// BuildIndex 建立 ID 与天数索引, 由加载层在校验后调用
// 查找方法只读索引, 未建索引的目录查不到任何地点或天数
func (c *Catalog) BuildIndex() {
	c.byID = make(map[string]*Location)
	for _, group := range [][]Location{c.Hotels, c.BrisbaneAttractions, c.GoldCoastAttractions} {
		for i := range group {
			c.byID[group[i].ID] = &group[i]
		}
	}
	c.byDay = make(map[int]*Day, len(c.DailyItinerary))
	for i := range c.DailyItinerary {
		c.byDay[c.DailyItinerary[i].Day] = &c.DailyItinerary[i]
	}
}

// Locations 返回全部地点: 酒店在前, 然后是布里斯本与黄金海岸的景点
func (c *Catalog) Locations() []Location {
	all := make([]Location, 0, len(c.Hotels)+len(c.BrisbaneAttractions)+len(c.GoldCoastAttractions))
	all = append(all, c.Hotels...)
	all = append(all, c.BrisbaneAttractions...)
	all = append(all, c.GoldCoastAttractions...)
	return all
}

// Location 根据 ID 查找地点
func (c *Catalog) Location(id string) (Location, bool) {
	loc, ok := c.byID[id]
	if !ok {
		return Location{}, false
	}
	return *loc, true
}

// Hotel 根据 ID 查找酒店, 只在 hotels 中查找
func (c *Catalog) Hotel(id string) (Location, bool) {
	for _, h := range c.Hotels {
		if h.ID == id {
			return h, true
		}
	}
	return Location{}, false
}

// Day 根据天数查找当天行程
func (c *Catalog) Day(n int) (Day, bool) {
	d, ok := c.byDay[n]
	if !ok {
		return Day{}, false
	}
	return *d, true
}
