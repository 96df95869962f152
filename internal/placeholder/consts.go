package placeholder

const (
	doubleBraceRegexp = `\{\{([^{}]+)\}\}`
	singleBraceRegexp = `\{([^{}]+)\}`
	urlRegexp         = `https?://[^\s)]+`
)

// aliases maps legacy flattened field names to their nested group. Alias
// resolution is one level deep only: a miss at top level resolves through at
// most one group lookup.
var aliases = map[string][2]string{
	"power_supply":                     {"service_environment_conditions", "power_supply"},
	"use_temperature_humidity_range":   {"service_environment_conditions", "use_temperature_humidity_range"},
	"storage_and_transport_conditions": {"service_environment_conditions", "storage_and_transport_conditions"},
	"durability":                       {"service_environment_conditions", "durability"},
	"definitions_of_basic_safety":      {"safety_protection_info", "definitions_of_basic_safety"},
	"device_classification":            {"safety_protection_info", "device_classification"},
	"equipment_safety_protection_and_warnings": {"safety_protection_info", "equipment_safety_protection_and_warnings"},
	"safety_protection":         {"safety_protection_info", "safety_protection"},
	"safety_warning":            {"safety_protection_info", "safety_warning"},
	"biological_alarms":         {"safety_protection_info", "biological_alarms"},
	"technical_alarms":          {"safety_protection_info", "technical_alarms"},
	"default_equipment_setting": {"various_settings", "default_equipment_setting"},
	"date_time_settings":        {"various_settings", "date_time_settings"},
	"maintenance":               {"maintenance_and_disposal", "maintenance"},
	"disposal":                  {"maintenance_and_disposal", "disposal"},
}
