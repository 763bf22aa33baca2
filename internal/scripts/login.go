// Package scripts 生成并加载注入到托管页面的脚本
package scripts

import (
	"encoding/json"
	"errors"
	"fmt"

	"chatdock/internal/service"
)

// ErrUnsupportedService 没有对应登录表单规则的服务
var ErrUnsupportedService = errors.New("unsupported service")

// SubmitDelayMillis 填充完成到点击登录按钮的间隔
const SubmitDelayMillis = 500

// loginForm 登录表单的选择器
type loginForm struct {
	Email    string
	Password string
	Submit   string
}

var loginForms = map[service.Service]loginForm{
	service.Gemini: {
		Email:    `input[type="email"]`,
		Password: `input[type="password"]`,
		Submit:   `button[type="submit"]`,
	},
	service.Poe: {
		Email:    `input[name="email"]`,
		Password: `input[name="password"]`,
		Submit:   `button[type="submit"]`,
	},
}

// 脚本求值结果：三个元素都找到时返回 true 并延迟点击，否则返回 false，不抛异常
const loginTemplate = `(function() {
  const emailInput = document.querySelector(%s);
  const passwordInput = document.querySelector(%s);
  const loginButton = document.querySelector(%s);
  if (!emailInput || !passwordInput || !loginButton) {
    return false;
  }
  emailInput.value = %s;
  passwordInput.value = %s;
  setTimeout(() => {
    loginButton.click();
  }, %d);
  return true;
})()`

// LoginScript 生成自动登录脚本。纯函数：相同输入得到逐字节相同的输出
func LoginScript(svc service.Service, username, password string) (string, error) {
	form, ok := loginForms[svc]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedService, svc)
	}
	return fmt.Sprintf(loginTemplate,
		jsString(form.Email),
		jsString(form.Password),
		jsString(form.Submit),
		jsString(username),
		jsString(password),
		SubmitDelayMillis,
	), nil
}

// jsString 返回 JS 字符串字面量
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
