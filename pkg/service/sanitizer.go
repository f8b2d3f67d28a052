package service

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// RedactedEmail 邮箱地址的替换标记
const RedactedEmail = "[redacted-email]"

var emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// 行首签名：致谢语、落款或邮件头。致谢语后须跟逗号、空白或行尾，避免误伤 "Bestow" 之类的词
var signatureLineRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:thanks|thank you|regards|best|cheers|sincerely)(?:[\s,]|$)`),
	regexp.MustCompile(`(?i)^\s*(?:from|sent|to|cc|bcc|subject)\s*:`),
}

var (
	// 句末的 "? Thanks, John"，保留标点
	inlineSignatureRegex = regexp.MustCompile(`(?i)([.!?]?)\s+(?:thanks|thank you|regards|best regards|best|cheers|sincerely)[\s,]+.*$`)
	// 逗号引出的 ", Thanks, John"
	commaSignatureRegex = regexp.MustCompile(`(?i),\s+(?:thanks|thank you|regards|best regards|best|cheers|sincerely)[\s,]+.*$`)
)

// RedactEmails 将所有邮箱地址替换为 RedactedEmail
func RedactEmails(text string) string {
	return emailRegex.ReplaceAllLiteralString(text, RedactedEmail)
}

// CountEmails 返回文本中会被脱敏的邮箱数量
func CountEmails(text string) int {
	return len(emailRegex.FindAllStringIndex(text, -1))
}

// RemoveSignature 去除签名：
//  1. 第一条签名行及其后的所有行全部丢弃，哪怕后面还有正文（例如 P.S.）
//  2. 最后一行末尾的行内签名，如 "... Thanks, John"
//
// 结果若非空且不以 . ! ? 结尾，补一个句号。
func RemoveSignature(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines
	for i, line := range lines {
		if isSignatureLine(line) {
			kept = lines[:i]
			break
		}
	}

	result := strings.TrimSpace(strings.Join(kept, "\n"))
	result = trimInlineSignature(result)
	result = commaSignatureRegex.ReplaceAllLiteralString(result, "")

	result = strings.TrimRightFunc(result, unicode.IsSpace)
	if result != "" && !endsSentence(result) {
		result += "."
	}
	return strings.TrimSpace(result)
}

// trimInlineSignature 紧跟逗号的签名留给 commaSignatureRegex 处理，否则会剩下 "Please advise,"
func trimInlineSignature(text string) string {
	loc := inlineSignatureRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	start, punctEnd := loc[2], loc[3]
	if start == punctEnd && start > 0 && text[start-1] == ',' {
		return text
	}
	return text[:punctEnd]
}

func isSignatureLine(line string) bool {
	for _, re := range signatureLineRegexes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// SanitizeContent 先脱敏邮箱，再去除签名
func SanitizeContent(content string) string {
	content = RedactEmails(content)
	content = RemoveSignature(content)
	return strings.TrimSpace(content)
}

// SanitizeReport 记录一次脱敏实际做了什么，用于预览输出
type SanitizeReport struct {
	EmailsRedacted   int
	SignatureRemoved bool
}

// Sanitizer 内容脱敏器，可选地在脱敏前去除 HTML 标签
type Sanitizer struct {
	markup *bluemonday.Policy
}

func NewSanitizer(stripHTML bool) *Sanitizer {
	s := &Sanitizer{}
	if stripHTML {
		s.markup = bluemonday.StrictPolicy()
	}
	return s
}

// Sanitize 返回脱敏后的正文以及处理报告
func (s *Sanitizer) Sanitize(content string) (string, SanitizeReport) {
	if s.markup != nil {
		content = s.stripHTML(content)
	}

	var report SanitizeReport
	report.EmailsRedacted = CountEmails(content)
	redacted := RedactEmails(content)
	cleaned := strings.TrimSpace(RemoveSignature(redacted))
	report.SignatureRemoved = signatureRemoved(redacted, cleaned)
	return cleaned, report
}

// stripHTML 清洗所有 HTML 标签，并解码 bluemonday 转义出的实体
func (s *Sanitizer) stripHTML(text string) string {
	if text == "" {
		return text
	}
	// <br> 和块级标签按换行处理，否则行首签名无法识别
	text = blockBreakRegex.ReplaceAllString(text, "\n")
	return html.UnescapeString(s.markup.Sanitize(text))
}

var blockBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li)>`)

// signatureRemoved 判断去签名是否删掉了实际内容，忽略补句号和首尾空白
func signatureRemoved(before, after string) bool {
	before = strings.TrimSpace(before)
	after = strings.TrimSuffix(after, ".")
	return len(strings.TrimSpace(after)) < len(strings.TrimRight(before, "."))
}

func endsSentence(text string) bool {
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") || strings.HasSuffix(text, "?")
}
