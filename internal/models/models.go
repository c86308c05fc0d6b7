package models

// BlogInfo 保存博客的基础展示信息，全部字段可选。
// 来源于站点配置文件 "博客信息" 小节里的字段行。
type BlogInfo struct {
	Title     string `json:"title,omitempty"`
	Desc      string `json:"desc,omitempty"`
	Slogan    string `json:"slogan,omitempty"`
	Copyright string `json:"copyright,omitempty"`
	Favicon   string `json:"favicon,omitempty"`
}

// AuthorInfo 保存 "作者信息" 小节解析出的字段。
type AuthorInfo struct {
	Name string `json:"name,omitempty"`

	// Avatar 是头像图片的站内路径，解析时已去掉开头的 "../"。
	Avatar string `json:"avatar,omitempty"`

	// Email 已从 <...> 包裹中取出。
	Email string `json:"email,omitempty"`

	// Github 是从 markdown 链接语法中提取的 URL；原文不是链接时保留原值。
	Github string `json:"github,omitempty"`

	// Tags 按 "、"、","、"，" 分隔并逐项去除空白，保持原有顺序。
	Tags []string `json:"tags,omitempty"`
}

// CategoryMeta 代表一个内容类别（如 "游戏"、"书架"）。
// 每个类别对应一个独立的内容 markdown 文件，Items 在该文件
// 被数据服务加载后才填充。
type CategoryMeta struct {
	// Title 是 "### 标题" 行解析出的展示名，必填。
	Title string `json:"title"`

	// ID 是 Title 的 slug。不保证唯一：两个标题生成同一个 slug 时，
	// 以 ID 为键的场合后写入者覆盖前者。
	ID string `json:"id"`

	// Type 是卡片样式类型（project、game、photo、book 等任意字符串），
	// 未声明时为 "default"。
	Type string `json:"type"`

	// Order 是展示序号，越小越靠前。未声明时为 99，排在所有
	// 显式声明序号的类别之后；同序号按配置文件中的出现顺序。
	Order int `json:"order"`

	// Color 是强调色记号，格式不做校验，由渲染层自行处理。
	Color string `json:"color,omitempty"`

	// Path 是类别内容文件相对站点根的路径，已去掉开头的 "../"。
	// 为空表示该类别没有内容文件。
	Path string `json:"path,omitempty"`

	// Items 由数据服务在加载该类别内容后原地挂载；加载前为 nil。
	Items []*ContentItem `json:"items,omitempty"`
}

// SiteConfig 是站点配置文件解析出的完整模型，每次启动构建一次。
type SiteConfig struct {
	BlogInfo   BlogInfo        `json:"blogInfo"`
	AuthorInfo AuthorInfo      `json:"authorInfo"`
	Categories []*CategoryMeta `json:"categories"`
}

// CategoryByID 按 slug 查找类别；重名 slug 返回最后一个写入者。
func (c *SiteConfig) CategoryByID(id string) *CategoryMeta {
	var found *CategoryMeta
	for _, cat := range c.Categories {
		if cat.ID == id {
			found = cat
		}
	}
	return found
}

// ContentItem 是一条内容记录。它是所有类别已知字段的并集，
// 除 Title 外全部可选；某个字段是否有意义取决于类别语义，
// 解析器只负责"出现即填充"。
type ContentItem struct {
	Title string `json:"title"`

	Desc        string `json:"desc,omitempty"`
	Tech        string `json:"tech,omitempty"`
	Status      string `json:"status,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Dev         string `json:"dev,omitempty"`
	Platform    string `json:"platform,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Review      string `json:"review,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishYear string `json:"publishYear,omitempty"`

	// Cover 优先取显式的 封面/Cover 图片语法，无论行序；
	// 没有显式封面时回退到由 ISBN 或 SteamID 推导出的地址。
	Cover string `json:"cover,omitempty"`

	PhotoLocation string `json:"photoLocation,omitempty"`
	PhotoDate     string `json:"photoDate,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`

	LinkText string `json:"linkText,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`

	// Order 保留原始字符串，排序时先尝试按数值比较，失败再按字典序。
	Order string `json:"order,omitempty"`

	Mood     string `json:"mood,omitempty"`
	Weather  string `json:"weather,omitempty"`
	Content  string `json:"content,omitempty"`
	Image    string `json:"image,omitempty"`
	Region   string `json:"region,omitempty"`
	Duration string `json:"duration,omitempty"`
	Director string `json:"director,omitempty"`
	Starring string `json:"starring,omitempty"`

	// IsSet 标记该条目是一个相册（子条目容器）。由 "###" 子标题
	// 或大于 1 的 "数量" 字段触发。
	IsSet bool `json:"isSet,omitempty"`

	// Photos 仅在 IsSet 为 true 时非空，子条目只携带照片相关字段，
	// 并独立于父条目列表按同一排序规则排序。
	Photos []*ContentItem `json:"photos,omitempty"`
}
