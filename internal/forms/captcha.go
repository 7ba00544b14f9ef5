package forms

import (
	"fmt"
	"math/rand"
)

// Captcha is the 4-digit challenge shown on the registration form.
type Captcha struct {
	code string
}

func NewCaptcha() *Captcha {
	c := &Captcha{}
	c.Regenerate()
	return c
}

// Regenerate picks a fresh 4-digit code. Called on form open and after
// every failed attempt.
func (c *Captcha) Regenerate() {
	c.code = fmt.Sprintf("%d", 1000+rand.Intn(9000))
}

// Code exposes the challenge for rendering.
func (c *Captcha) Code() string {
	return c.code
}

func (c *Captcha) Matches(input string) bool {
	return input == c.code
}
