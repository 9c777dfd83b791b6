package consts

// 求职申请状态流转
const (
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// AllStatuses 报表聚合时需要补零的完整状态集合
var AllStatuses = []string{
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// 订阅档位
const (
	TierFree = "free"
	TierPro  = "pro"
)

const (
	MimePrefixImage = "image"
	MimePrefixPDF   = "application/pdf"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)
