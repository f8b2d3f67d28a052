package service

import (
	"strings"
)

const (
	TitlePrefix                  = "Q&A: "
	DefaultTitleMaxLength        = 60
	DefaultWordBoundaryThreshold = 0.7
)

// TitleGenerator 由正文生成讨论标题
type TitleGenerator struct {
	MaxLength int
	// 截断时若最后一个空格的位置不小于 MaxLength*Threshold，则在空格处截断，否则硬截断
	Threshold float64
}

func NewTitleGenerator(maxLength int, threshold float64) *TitleGenerator {
	if maxLength <= 0 {
		maxLength = DefaultTitleMaxLength
	}
	if threshold < 0 || threshold > 1 {
		threshold = DefaultWordBoundaryThreshold
	}
	return &TitleGenerator{MaxLength: maxLength, Threshold: threshold}
}

// GenerateTitle 使用默认长度和阈值生成标题
func GenerateTitle(content string) string {
	return NewTitleGenerator(DefaultTitleMaxLength, DefaultWordBoundaryThreshold).Generate(content)
}

// Generate 按字符（rune）而非字节截断，空内容返回仅含前缀的标题
func (g *TitleGenerator) Generate(content string) string {
	runes := []rune(content)
	if len(runes) <= g.MaxLength {
		return TitlePrefix + content
	}

	window := string(runes[:g.MaxLength])
	if lastSpace := strings.LastIndex(window, " "); lastSpace >= 0 {
		// LastIndex 返回字节下标，换算成字符位置再与阈值比较
		pos := len([]rune(window[:lastSpace]))
		if float64(pos) >= float64(g.MaxLength)*g.Threshold {
			window = window[:lastSpace]
		}
	}
	return TitlePrefix + window + "..."
}
