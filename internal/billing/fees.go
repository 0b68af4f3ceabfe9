package billing

const (
	Currency       = "USD"
	TaxRate        = 0.08
	BaseMonthlyFee = 300.00
)

type WasteType string

const (
	WasteHazardous  WasteType = "hazardous"
	WasteElectronic WasteType = "electronic"
	WasteBulky      WasteType = "bulky"
	WasteOrganic    WasteType = "organic"
	WastePlastic    WasteType = "plastic"
	WastePaper      WasteType = "paper"
	WasteGlass      WasteType = "glass"
	WasteMetal      WasteType = "metal"
	WasteGeneral    WasteType = "general"
)

// WasteTypeInfo is the display record for a waste type.
type WasteTypeInfo struct {
	Name string  `json:"name"`
	Icon string  `json:"icon"`
	Fee  float64 `json:"fee"`
}

// UnknownWasteType is returned for keys missing from the fee table.
var UnknownWasteType = WasteTypeInfo{Name: "Unknown", Icon: "♻️", Fee: 0}

// wasteTypeOrder fixes the listing order of the fee table.
var wasteTypeOrder = []WasteType{
	WasteHazardous,
	WasteElectronic,
	WasteBulky,
	WasteOrganic,
	WastePlastic,
	WastePaper,
	WasteGlass,
	WasteMetal,
	WasteGeneral,
}

var wasteTypes = map[WasteType]WasteTypeInfo{
	WasteHazardous:  {Name: "Hazardous Waste", Icon: "☢️", Fee: 45.00},
	WasteElectronic: {Name: "Electronic Waste", Icon: "💻", Fee: 25.00},
	WasteBulky:      {Name: "Bulky Items", Icon: "🛋️", Fee: 35.00},
	WasteOrganic:    {Name: "Organic Waste", Icon: "🍂", Fee: 12.00},
	WastePlastic:    {Name: "Plastic", Icon: "🧴", Fee: 10.00},
	WastePaper:      {Name: "Paper", Icon: "📄", Fee: 8.00},
	WasteGlass:      {Name: "Glass", Icon: "🍾", Fee: 15.00},
	WasteMetal:      {Name: "Metal", Icon: "🥫", Fee: 20.00},
	WasteGeneral:    {Name: "General Waste", Icon: "🗑️", Fee: 5.00},
}

var additionalServiceFees = map[string]float64{
	"Extra Pickup":    10.00,
	"Bin Cleaning":    5.00,
	"Compost Service": 15.00,
	"Recycling Plus":  8.00,
}

// WasteTypeEntry pairs a fee table key with its info.
type WasteTypeEntry struct {
	Key WasteType `json:"key"`
	WasteTypeInfo
}

// WasteTypes lists the fee table in a stable order.
func WasteTypes() []WasteTypeEntry {
	result := make([]WasteTypeEntry, 0, len(wasteTypeOrder))
	for _, key := range wasteTypeOrder {
		result = append(result, WasteTypeEntry{Key: key, WasteTypeInfo: wasteTypes[key]})
	}
	return result
}

// LookupWasteType never fails: unknown or empty keys yield UnknownWasteType.
func LookupWasteType(key string) WasteTypeInfo {
	info, ok := wasteTypes[WasteType(key)]
	if !ok {
		return UnknownWasteType
	}
	return info
}

// IsWasteType reports whether key is present in the fee table.
func IsWasteType(key string) bool {
	_, ok := wasteTypes[WasteType(key)]
	return ok
}

// AdditionalServiceFee returns the table fee for a named add-on service.
func AdditionalServiceFee(name string) (float64, bool) {
	fee, ok := additionalServiceFees[name]
	return fee, ok
}
