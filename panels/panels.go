// Package panels 地点详情面板与实用资讯面板的内容。
package panels

import (
	"travel-map/markers"
	"travel-map/model"
)

// LocationDetail 地点详情面板
type LocationDetail struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	EnglishName   string         `json:"english_name,omitempty"`
	Category      model.Category `json:"category"`
	CategoryLabel string         `json:"category_label"`
	Icon          string         `json:"icon"`
	Address       string         `json:"address,omitempty"`
	Description   string         `json:"description,omitempty"`
	OpeningHours  string         `json:"opening_hours"`
	TicketPrice   string         `json:"ticket_price"`
	Highlights    []string       `json:"highlights"`
	Tips          []string       `json:"tips"`
	Website       string         `json:"website,omitempty"`
	VisitDates    []string       `json:"visit_dates,omitempty"`
	StayDates     []string       `json:"stay_dates,omitempty"`
}

type details struct {
	openingHours string
	ticketPrice  string
	highlights   []string
	tips         []string
	website      string
}

// 重点地点的补充资料
var overrides = map[string]details{
	"lone_pine_sanctuary": {
		openingHours: "每日 9:00 AM - 5:00 PM",
		ticketPrice:  "成人 A$59, 兒童 A$42",
		highlights: []string{
			"世界最大無尾熊保護區",
			"近距離接觸無尾熊和袋鼠",
			"每日動物表演和講解",
			"野生吸蜜鸚鵡餵食 9:45 AM",
			"猛禽飛行表演 10:30 AM & 1:00 PM",
		},
		tips: []string{
			"建議安排4-5小時參觀",
			"無尾熊互動需另付費預約",
			"可搭乘430或445號公車直達",
		},
		website: "https://lonepinekoalasanctuary.com/",
	},
	"south_bank": {
		openingHours: "公園: 每日 5:00 AM - 12:00 AM, 市集: 週五-日",
		ticketPrice:  "免費入場",
		highlights: []string{
			"人造沙灘 Streets Beach",
			"布里斯本摩天輪",
			"文創假日市集",
			"昆士蘭文化中心",
		},
		tips: []string{
			"週末市集最為熱鬧",
			"免費BBQ設施可使用",
			"推薦參觀2-3小時",
		},
	},
	"warner_bros_movie_world": {
		openingHours: "每日 10:00 AM - 5:00 PM",
		ticketPrice:  "單日票約 A$109",
		highlights: []string{
			"DC超級英雄主題",
			"DC Rivals HyperCoaster",
			"好萊塢特技駕駛表演",
			"明星大遊行",
		},
		tips: []string{
			"線上購票更便宜",
			"考慮購買快速通關",
			"下載官方App查看等待時間",
		},
		website: "https://movieworld.com.au/",
	},
}

// 没有补充资料时的占位内容
const (
	PlaceholderOpeningHours = "請查詢官方網站"
	PlaceholderTicketPrice  = "詳情請洽現場"
	PlaceholderHighlight    = "精彩體驗等您探索"
)

// PlaceholderTips 没有补充资料时的提醒
var PlaceholderTips = []string{"建議提前規劃", "注意營業時間"}

// CategoryLabel 分类的显示名称
func CategoryLabel(c model.Category) string {
	switch c {
	case model.CategoryHotel:
		return "住宿酒店"
	case model.CategoryAttraction:
		return "旅遊景點"
	case model.CategoryEducation:
		return "教育機構"
	case model.CategoryShopping:
		return "購物場所"
	case model.CategoryThemePark:
		return "主題樂園"
	case model.CategoryFood:
		return "美食地點"
	case model.CategoryActivity:
		return "活動體驗"
	default:
		return "地點"
	}
}

// Location 生成地点详情
func Location(loc model.Location) LocationDetail {
	d := LocationDetail{
		ID:            loc.ID,
		Name:          loc.Name,
		EnglishName:   loc.EnglishName,
		Category:      loc.Category,
		CategoryLabel: CategoryLabel(loc.Category),
		Icon:          markers.IconFor(loc.Category),
		Address:       loc.Address,
		Description:   loc.Description,
		VisitDates:    loc.VisitDates,
		StayDates:     loc.Dates,
	}

	if o, ok := overrides[loc.ID]; ok {
		d.OpeningHours = o.openingHours
		d.TicketPrice = o.ticketPrice
		d.Highlights = append([]string(nil), o.highlights...)
		d.Tips = append([]string(nil), o.tips...)
		d.Website = o.website
		return d
	}

	highlight := loc.Description
	if highlight == "" {
		highlight = PlaceholderHighlight
	}
	d.OpeningHours = PlaceholderOpeningHours
	d.TicketPrice = PlaceholderTicketPrice
	d.Highlights = []string{highlight}
	d.Tips = append([]string(nil), PlaceholderTips...)
	return d
}

// Info 实用资讯面板, 原样呈现参考文档的内容
type Info struct {
	EmergencyContacts model.EmergencyContacts `json:"emergency_contacts"`
	TravelTips        model.TravelTips        `json:"travel_tips"`
}

// InfoFrom 生成实用资讯; 文档未加载时 ok 为 false, 面板不显示
func InfoFrom(doc *model.RouteDocument) (info Info, ok bool) {
	if doc == nil {
		return Info{}, false
	}
	return Info{
		EmergencyContacts: doc.EmergencyContacts,
		TravelTips:        doc.TravelTips,
	}, true
}
