package service

import (
	"regexp"
	"strconv"
)

// 转账附言中的购买意图格式，例如 "COURSE42USER7"。
// 前后允许携带银行网关附加的任意噪音字符。
var transferIntentPattern = regexp.MustCompile(`COURSE(\d+)USER(\d+)`)

// TransferIntent 从转账附言解析出的购买意图
type TransferIntent struct {
	CourseID uint
	UserID   uint
}

// parseTransferIntent 从转账附言中提取第一个购买意图。
// 无法解析时返回 false，解析失败不是错误，只代表这笔转账与课程购买无关。
func parseTransferIntent(content string) (TransferIntent, bool) {
	m := transferIntentPattern.FindStringSubmatch(content)
	if m == nil {
		return TransferIntent{}, false
	}
	courseID, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return TransferIntent{}, false
	}
	userID, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return TransferIntent{}, false
	}
	if courseID == 0 || userID == 0 {
		return TransferIntent{}, false
	}
	return TransferIntent{CourseID: uint(courseID), UserID: uint(userID)}, true
}
