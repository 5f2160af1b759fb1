// Package errors 提供统一的错误处理框架
package errors

import (
	"errors"
	"fmt"
)

// Code 错误码
type Code string

const (
	// 通用错误码
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"
	CodeNotFound Code = "NOT_FOUND"
	CodeTimeout  Code = "TIMEOUT"

	// 编译管线相关 (spec schema -> CP model -> solve -> project)
	CodeSchemaViolation    Code = "SCHEMA_VIOLATION"
	CodeReferenceViolation Code = "REFERENCE_VIOLATION"
	CodeCapacityViolation  Code = "CAPACITY_VIOLATION"
	CodeInfeasible         Code = "INFEASIBLE"
	CodeEngineError        Code = "ENGINE_ERROR"
)

// AppError 应用错误
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails 添加详细信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause 添加原因
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField 添加字段
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New 创建新错误
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is 检查错误是否为特定类型
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode 获取错误码
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// 预定义错误
var ErrNotFound = New(CodeNotFound, "资源不存在")

// NotFound 创建资源不存在错误
func NotFound(resource, id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s '%s' 不存在", resource, id))
}

// Timeout 创建求解超时错误（求解器在时限内未证明最优或不可行）
func Timeout(reason string) *AppError {
	return New(CodeTimeout, reason)
}

// SchemaViolation 创建结构性违反错误（字段缺失、类型错误、格式不符）
func SchemaViolation(field, reason string) *AppError {
	return New(CodeSchemaViolation, fmt.Sprintf("字段 '%s' 违反结构约束: %s", field, reason))
}

// ReferenceViolation 创建引用性违反错误（id 未在对应集合中声明）
func ReferenceViolation(field, reason string) *AppError {
	return New(CodeReferenceViolation, fmt.Sprintf("字段 '%s' 引用无效: %s", field, reason))
}

// CapacityViolation 创建规模超限错误（分派格点超过求解器承受上限）
func CapacityViolation(reason string) *AppError {
	return New(CodeCapacityViolation, reason)
}

// Infeasible 创建无可行解错误（求解器证明约束集合不可满足）
func Infeasible(reason string) *AppError {
	return New(CodeInfeasible, reason)
}

// EngineError 创建求解引擎内部错误（不可恢复的底层故障）
func EngineError(cause error) *AppError {
	return Wrap(cause, CodeEngineError, "求解引擎错误")
}

// ValidationErrors 验证错误集合，C1 与 C2 各自在自己的实例上累积，从不在第一个错误处短路
type ValidationErrors struct {
	Code   Code              `json:"-"`
	Errors []ValidationError `json:"errors"`
}

// ValidationError 单个验证错误
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "验证失败"
	}
	return fmt.Sprintf("验证失败: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add 追加一条 (field, message) 验证错误；错误码由 ve.Code 统一承载
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// Messages 返回扁平化的 "field: message" 列表，供外部接口直接消费
func (ve *ValidationErrors) Messages() []string {
	out := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		out[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return out
}

// HasErrors 检查是否有错误
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError 转换为 AppError
func (ve *ValidationErrors) ToAppError() *AppError {
	code := ve.Code
	if code == "" {
		code = CodeSchemaViolation
	}
	err := New(code, "验证失败")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
