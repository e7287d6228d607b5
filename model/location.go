package model

// Category 地点分类
// 取值是封闭的; 数据中出现表外的分类会原样保留, 由图标/颜色查表的默认分支处理
type Category string

const (
	CategoryHotel      Category = "hotel"
	CategoryAttraction Category = "attraction"
	CategoryEducation  Category = "education"
	CategoryShopping   Category = "shopping"
	CategoryThemePark  Category = "theme_park"
	CategoryFood       Category = "food"
	CategoryActivity   Category = "activity"
)

// Categories 按图例顺序列出全部已知分类
var Categories = []Category{
	CategoryHotel,
	CategoryAttraction,
	CategoryEducation,
	CategoryShopping,
	CategoryThemePark,
	CategoryFood,
	CategoryActivity,
}

// Known 判断分类是否在表内
func (c Category) Known() bool {
	switch c {
	case CategoryHotel, CategoryAttraction, CategoryEducation, CategoryShopping,
		CategoryThemePark, CategoryFood, CategoryActivity:
		return true
	default:
		return false
	}
}

// Location 地图上的一个地点 (酒店或景点), 加载后不可变
type Location struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	EnglishName string   `json:"english_name,omitempty"`
	Category    Category `json:"type"`
	Coordinates Point    `json:"coordinates"`
	Address     string   `json:"address,omitempty"`
	Description string   `json:"description,omitempty"`
	VisitDates  []string `json:"visit_dates,omitempty"` // 景点: 参观日期
	Dates       []string `json:"dates,omitempty"`       // 酒店: 住宿日期
}
