package climate

// NASA POWER parameter codes for the daily point API.
const (
	ParamTempMax  = "T2M_MAX"
	ParamPrecip   = "PRECTOTCORR"
	ParamWind     = "WS10M"
	ParamHumidity = "RH2M"
)

// VariableCatalog maps user-facing variable names to POWER parameter codes.
// Read-only; condition strings reference variables by these names.
var VariableCatalog = map[string]string{
	"temperature":   ParamTempMax,
	"precipitation": ParamPrecip,
	"wind_speed":    ParamWind,
	"humidity":      ParamHumidity,
}

// DailyRecord holds one calendar day of provider data. A nil field means the
// provider had no value for that day and parameter.
type DailyRecord struct {
	TempMax  *float64
	Precip   *float64
	Wind     *float64
	Humidity *float64
}

// Value returns the record's value for a parameter code, or nil when the
// code is unknown or the day has no data for it.
func (r DailyRecord) Value(code string) *float64 {
	switch code {
	case ParamTempMax:
		return r.TempMax
	case ParamPrecip:
		return r.Precip
	case ParamWind:
		return r.Wind
	case ParamHumidity:
		return r.Humidity
	default:
		return nil
	}
}

// Set stores a value under a parameter code. Unknown codes are ignored.
func (r *DailyRecord) Set(code string, v *float64) {
	switch code {
	case ParamTempMax:
		r.TempMax = v
	case ParamPrecip:
		r.Precip = v
	case ParamWind:
		r.Wind = v
	case ParamHumidity:
		r.Humidity = v
	}
}
