package model

// 导出文件中必须存在的列
const (
	FieldSource    = "Source"
	FieldType      = "Type"
	FieldContent   = "Content"
	FieldReactions = "Reactions"
)

// RequiredFields 按报错时的展示顺序排列
var RequiredFields = []string{FieldSource, FieldType, FieldContent, FieldReactions}

// Record 表示导出文件中的一行，列名到取值
type Record map[string]string

// Get 返回字段值，行内缺失的字段视为空字符串
func (r Record) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

func (r Record) Source() string    { return r.Get(FieldSource) }
func (r Record) Type() string      { return r.Get(FieldType) }
func (r Record) Content() string   { return r.Get(FieldContent) }
func (r Record) Reactions() string { return r.Get(FieldReactions) }

// Question 被筛选出的提问，RowNumber 为其在数据源中的行号（从 1 开始，不含表头）
type Question struct {
	RowNumber int
	Record    Record
}
