package repository

// CourseListFilter 查询课程列表的过滤条件
type CourseListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	LevelID       uint
	SellerID      uint
	Search        string
	OnlyPublished bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}

// EnrollmentListFilter 查询报名记录列表的过滤条件
type EnrollmentListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}

// ReviewListFilter 查询课程评价列表的过滤条件
type ReviewListFilter struct {
	Page     int
	PageSize int
	CourseID uint
}

// ComplaintListFilter 查询投诉列表的过滤条件
type ComplaintListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}
