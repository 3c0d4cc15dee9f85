package factory

// Фон карточки выбирается как gradients[id % len(gradients)].
var gradients = []string{
	"linear-gradient(135deg, #f5e6d3, #e8d5c4)",
	"linear-gradient(135deg, #d3e5f5, #c4d5e8)",
	"linear-gradient(135deg, #d3f5e6, #c4e8d5)",
	"linear-gradient(135deg, #f5d3d3, #e8c4c4)",
	"linear-gradient(135deg, #e6d3f5, #d5c4e8)",
	"linear-gradient(135deg, #f5f0d3, #e8e0c4)",
	"linear-gradient(135deg, #f5d3e8, #e8c4d5)",
	"linear-gradient(135deg, #d3f5f5, #c4e8e8)",
	"linear-gradient(135deg, #e8e6d3, #dbd5c4)",
	"linear-gradient(135deg, #d3e6f0, #c4d5e0)",
	"linear-gradient(135deg, #f0e6d3, #e0d5c4)",
	"linear-gradient(135deg, #d3f0e6, #c4e0d5)",
}

const defaultStructure = "RC造（鉄筋コンクリート）"

var structureByType = map[string]string{
	"マンション": "RC造（鉄筋コンクリート）",
	"アパート":  "軽量鉄骨造",
	"一戸建て":  "木造2階建",
	"メゾネット": "RC造（鉄筋コンクリート）",
}

// Бренды для шаблонов окружения, индекс = первая руна метки города % 3
var (
	convenienceStores = []string{"セブンイレブン", "ローソン", "ファミリーマート"}
	supermarkets      = []string{"マックスバリュ", "イオン", "ライフ"}
)

// Значения, если сид их не задает
const (
	defaultParking     = "なし（近隣月極駐車場あり）"
	defaultMoveIn      = "即入居可"
	defaultContract    = "2年間（普通借家）"
	defaultGuarantor   = "利用必須（月額賃料の50%）"
	defaultTransaction = "仲介"
)

type tieredAmount struct {
	high      int64
	low       int64
	threshold float64 // 万円
}

func (t tieredAmount) pick(price float64) int64 {
	if price >= t.threshold {
		return t.high
	}
	return t.low
}

var costConfig = struct {
	brokerageRate float64
	guarantorRate float64
	insurance     tieredAmount
	keyExchange   tieredAmount
}{
	brokerageRate: 1.1,
	guarantorRate: 0.5,
	insurance:     tieredAmount{high: 20000, low: 15000, threshold: 8},
	keyExchange:   tieredAmount{high: 22000, low: 16500, threshold: 8},
}

const (
	sqmPerJo         = 1.62
	usableAreaRatio  = 0.75
	minRoomJo        = 3.0
	houseType        = "一戸建て"
	unknownAgeYears  = 99
	unknownAgeLabel  = "不明"
	brandNewAgeLabel = "新築"
)
