package template

import "errors"

var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateUnreadable  = errors.New("template unreadable")
	ErrTemplateParse       = errors.New("template parse failed")
	ErrRender              = errors.New("template render failed")
	ErrInvalidMarkup       = errors.New("invalid markup")
	ErrInvalidTemplateHome = errors.New("invalid template home")
	ErrNoRequestConfig     = errors.New("no renderer request configuration")
)
