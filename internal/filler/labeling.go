package filler

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geoirb/doc-templater/internal/path"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

type productionArea struct {
	country string
	address string
}

var productionAreaMap = map[string]productionArea{
	"OMD": {
		country: "中国",
		address: "欧姆龙（大连）有限公司大连经济技术开发区松江路3号",
	},
	"OHZ": {country: "日本"},
	"OHV": {country: "越南"},
}

var labelingCaptions = map[string][]string{
	"ja": {
		"代表型番",
		"商品型式名",
		"販売名称",
		"販売形式",
		"ｴﾘｱﾈｰﾐﾝｸﾞ（販売商品コード）",
		"OMRON　ロゴ",
		"製造元",
		"生産国",
		"JANコード",
		"ITFコート",
		"お問合せ先 ",
		"医療機器分類",
		"類別番号および類別名称",
		"使用目的/効能効果",
		"医療機器認証番号",
		"製造販売元",
	},
	"zh": {
		"代表型号",
		"商品型号名称",
		"销售名称",
		"销售形式",
		"区域命名（销售商品代码）",
		"OMRON 标志",
		"制造商",
		"生产国",
		"JAN 代码",
		"ITF 代码",
		"咨询联系方式",
		"医疗器械分类",
		"类别编号及类别名称",
		"使用目的／功效",
		"医疗器械认证编号",
		"制造销售商",
	},
	"en": {
		"Representative Model Number",
		"Product Model Name",
		"Sales Name",
		"Sales Format",
		"Area Naming (Sales Product Code)",
		"OMRON Logo",
		"Manufacturer",
		"Country of Origin",
		"JAN Code",
		"ITF Code",
		"Contact Information",
		"Medical Device Classification",
		"Class Number and Class Name",
		"Intended Use / Effectiveness",
		"Medical Device Certification Number",
		"Manufacturer and Distributor",
	},
}

const labelingCaptionStartRow = 11

// LabelingSpecification fills the label confirmation sheet: scalar fields
// at fixed coordinates, per-language caption column, then repeating
// product-model rows expanded before the approval footer.
type LabelingSpecification struct {
	facade   *xlsx.Facade
	expander *xlsx.Expander
}

// Fill ...
func (s *LabelingSpecification) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	f, err := xlsx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	language := path.Language(templatePath)

	setCell(f, sheet, "D5", paramString(params, "theme_no"))
	setCell(f, sheet, "K5", paramString(params, "theme_name"))
	setCell(f, sheet, "D7", paramString(params, "product_model_name"))
	setCell(f, sheet, "G12", paramString(params, "product_model"))
	setCell(f, sheet, "G13", paramString(params, "product_name"))
	setCell(f, sheet, "G14", paramString(params, "sales_name"))

	f.SetCellValue(sheet, "G15", "Intellisense")
	f.SetCellValue(sheet, "G16", "OMRON")
	f.SetCellValue(sheet, "G25", "注册证编号/产品技术要求编号")

	if paramString(params, "ohc_target") != "" {
		f.SetCellValue(sheet, "G19", "OHC提供")
		f.SetCellValue(sheet, "G26", "欧姆龙健康医疗（中国）有限公司")
	}
	if channel := strings.TrimSpace(paramString(params, "sales_channel")); channel != "" {
		if channel == "医療機関" {
			f.SetCellValue(sheet, "G21", "400-889-0089")
		} else {
			f.SetCellValue(sheet, "G21", "400-770-9988")
		}
	}
	if area, ok := productionAreaMap[paramString(params, "production_area")]; ok {
		f.SetCellValue(sheet, "G17", area.address)
		f.SetCellValue(sheet, "G18", area.country+"制造")
	}

	for idx, caption := range labelingCaptions[language] {
		cell, err := excelize.JoinCellName("C", labelingCaptionStartRow+idx)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, caption)
	}

	if records := modelRecords(params); len(records) > 0 {
		if _, err = s.expander.ExpandAndFill(f, labelingExpand(sheet), records); err != nil {
			return nil, fmt.Errorf("expand model rows: %w", err)
		}
	}

	if err = s.facade.Substitute(ctx, f, params, nil); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	return xlsx.Bytes(f)
}

// labelingExpand is the repeating region below the caption block. Its
// anchor follows the approval footer so template edits above it do not
// break insertion.
func labelingExpand(sheet string) xlsx.ExpandConfig {
	return xlsx.ExpandConfig{
		Sheet:        sheet,
		Policy:       xlsx.AnchorFooter,
		FooterMarker: "承認",
		StartRow:     30,
		Preallocated: 2,
		ReferenceRow: 29,
		Groups: []xlsx.ColumnGroup{
			{From: "B", To: "C", Field: fieldSalesName},
			{From: "D", To: "H", Field: fieldProductModel},
			{From: "I", To: "J", Field: fieldCatalogNumber},
			{From: "K", To: "M", Field: fieldDeviceCategory},
		},
		SpacerRow: 33,
	}
}
