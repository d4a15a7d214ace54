package services

import "errors"

// 业务错误，控制器通过 errors.Is 映射为对应的HTTP状态码
var (
	ErrElderlyNotFound  = errors.New("老人不存在")
	ErrGuardianNotFound = errors.New("监护人不存在")
	ErrDeviceNotFound   = errors.New("设备不存在")
	ErrAlertNotFound    = errors.New("报警记录不存在")
	ErrRelationNotFound = errors.New("监护关系不存在")
	ErrAdminNotFound    = errors.New("管理员不存在")

	ErrPhoneNotRegistered = errors.New("该手机号未注册")
	ErrPhoneAlreadyUsed   = errors.New("手机号已被使用")
	ErrAlreadyBound       = errors.New("已经绑定该用户")
	ErrSerialAlreadyUsed  = errors.New("设备序列号已存在")

	ErrPasswordIncorrect = errors.New("密码错误")
	ErrInvalidTransition = errors.New("报警状态不允许该变更")
)
