package filler

import (
	"github.com/geoirb/doc-templater/internal/placeholder"
)

// Repeating product-model record fields. The catalog number, UDI code and
// device category are filled in by hand after generation, so they ship
// empty.
const (
	fieldSalesName      = "sales_name"
	fieldProductModel   = "product_model"
	fieldCatalogNumber  = "catalog_number"
	fieldBasicUDIDICode = "basic_udi_di_code"
	fieldDeviceCategory = "device_category"
)

// modelRecords derives the repeating product-model rows from the
// slash-joined product_model and sales_name parameters. Lists of unequal
// length are zipped with empty strings past the shorter one.
func modelRecords(params map[string]interface{}) []map[string]string {
	models := placeholder.SplitList(paramString(params, "product_model"))
	names := placeholder.SplitList(paramString(params, "sales_name"))

	count := len(models)
	if len(names) > count {
		count = len(names)
	}
	records := make([]map[string]string, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, map[string]string{
			fieldSalesName:      at(names, i),
			fieldProductModel:   at(models, i),
			fieldCatalogNumber:  "",
			fieldBasicUDIDICode: "",
			fieldDeviceCategory: "",
		})
	}
	return records
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

func paramString(params map[string]interface{}, key string) string {
	value, ok := placeholder.Resolve(params, key)
	if !ok {
		return ""
	}
	return placeholder.Stringify(value)
}
