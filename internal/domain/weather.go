package domain

// CurrentDate marks a current-weather record.
const CurrentDate = "current"

type Forecast struct {
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	Conditions  string `json:"conditions"`
}

// Weather is one of: a current record (Date == CurrentDate), a forecast
// record (Forecasts non-empty) or an unavailability Message.
type Weather struct {
	Location    string     `json:"location,omitempty"`
	Date        string     `json:"date,omitempty"`
	Temperature string     `json:"temperature,omitempty"`
	Conditions  string     `json:"conditions,omitempty"`
	Forecasts   []Forecast `json:"forecasts,omitempty"`
	Message     string     `json:"message,omitempty"`
}

func WeatherMessage(msg string) Weather { return Weather{Message: msg} }

func (w Weather) Available() bool  { return w.Message == "" }
func (w Weather) IsForecast() bool { return w.Message == "" && len(w.Forecasts) > 0 }
