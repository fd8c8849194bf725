package router

// Catalog identifiers.
const (
	RouterName = "Weather API Router"

	ToolGetWeather = "get_weather"

	ResourceWeatherDataURI  = "weather-data-uri"
	ResourceWeatherDataName = "WeatherDataResource"

	PromptGetWeather = "GetWeather"

	SecretWeatherAPIKey = "WEATHER_API_KEY"
)

// EmptyLocationMessage is the soft error text returned for an empty location.
const EmptyLocationMessage = "you need to provide a location"

// locationFormats is shared by the router instructions and the tool description.
// Callers echo it to language models, so the wording and order are fixed.
const locationFormats = `* Latitude and Longitude (Decimal degree) e.g: location=48.8567,2.3508
* city name e.g.: location=Paris
* US zip e.g.: location=10001
* UK postcode e.g: location=SW1
* Canada postal code e.g: location=G2J
* metar:<metar code> e.g: location=metar:EGLL
* iata:<3 digit airport code> e.g: location=iata:DXB
* auto:ip IP lookup e.g: location=auto:ip
* IP address (IPv4 and IPv6 supported) e.g: location=100.0.0.1
* By ID returned from Search API. e.g: location=id:2801268`

const instructions = "Fetches the current weather for a given location.\n" +
	"Call the get_weather tool and pass a json {'location'='input your location here'}, as input. " +
	"Location can be in different formats:\n" + locationFormats

const getWeatherDescription = "Fetches, retrieves or gets the weather prediction for a specific location.\n" +
	"Use the location parameter. Location can be in different formats:\n" + locationFormats

const getWeatherInputSchema = `{
	"type": "object",
	"properties": {
		"location": {
			"type": "string"
		}
	},
	"required": ["location"]
}`

const getWeatherOutputSchema = `{
	"title": "Forecast",
	"type": "object",
	"properties": {
		"forecastday": {
			"title": "Forecastday",
			"anyOf": [
				{
					"type": "array",
					"items": { "$ref": "#/$defs/ForecastForecastdayInner" }
				},
				{ "type": "null" }
			]
		}
	},
	"required": ["forecastday"],
	"$defs": {
		"ForecastForecastdayInner": {
			"type": "object",
			"title": "ForecastForecastdayInner",
			"properties": {
				"date": { "type": ["string", "null"] },
				"date_epoch": { "type": ["integer", "null"] },
				"day": {
					"anyOf": [
						{ "$ref": "#/$defs/ForecastForecastdayInnerDay" },
						{ "type": "null" }
					]
				},
				"astro": {
					"anyOf": [
						{ "$ref": "#/$defs/ForecastForecastdayInnerAstro" },
						{ "type": "null" }
					]
				},
				"hour": {
					"anyOf": [
						{
							"type": "array",
							"items": { "$ref": "#/$defs/ForecastForecastdayInnerHourInner" }
						},
						{ "type": "null" }
					]
				}
			},
			"required": ["date", "date_epoch", "day", "astro", "hour"]
		},
		"ForecastForecastdayInnerDay": {
			"type": "object",
			"title": "ForecastForecastdayInnerDay",
			"properties": {
				"maxtemp_c": { "type": ["number", "null"] },
				"mintemp_c": { "type": ["number", "null"] },
				"uv": { "type": ["integer", "null"] }
			}
		},
		"ForecastForecastdayInnerAstro": {
			"type": "object",
			"properties": {
				"sunrise": { "type": ["string", "null"] },
				"sunset": { "type": ["string", "null"] }
			}
		},
		"ForecastForecastdayInnerHourInner": {
			"type": "object",
			"properties": {
				"time": { "type": ["string", "null"] },
				"temp_c": { "type": ["number", "null"] },
				"uv": { "type": ["integer", "null"] }
			}
		}
	}
}`

const (
	weatherDataDescription = "This router provides weather predictions. Call the get_weather tool and pass a location, e.g. London, as input."
	weatherDataMIMEType    = "application/json"
	weatherDataText        = `{"weather": "sunny", "temperature":"15 degrees"}`
)

const (
	getWeatherPromptDescription = "Prompt to get weather information"
	getWeatherPromptResultDesc  = "Prompt to fetch weather data"
	getWeatherPromptText        = "Please provide a location to get the weather."
)

var tools = []ToolDescriptor{
	{
		Name:         ToolGetWeather,
		Description:  getWeatherDescription,
		InputSchema:  getWeatherInputSchema,
		OutputSchema: getWeatherOutputSchema,
	},
}

var resources = []ResourceDescriptor{
	{
		URI:         ResourceWeatherDataURI,
		Name:        ResourceWeatherDataName,
		Description: weatherDataDescription,
		MIMEType:    weatherDataMIMEType,
	},
}

var prompts = []PromptDescriptor{
	{
		Name:        PromptGetWeather,
		Description: getWeatherPromptDescription,
		Arguments: []PromptArgument{
			{Name: "location", Description: "Location to get weather for", Required: true},
		},
	},
}

var secretCatalog = []SecretDescription{
	{Name: SecretWeatherAPIKey, Description: "the api key for weatherapi.com", Required: true},
}
