package ui

import (
	"github.com/AlecAivazis/survey/v2"
)

// SelectOption は説明付きの選択肢
type SelectOption struct {
	Value       string
	Description string
}

// SelectWithDesc は説明付きの選択肢から1つを選ばせる
func SelectWithDesc(message string, options []SelectOption, defaultValue string) (string, error) {
	labels := make([]string, len(options))
	valueMap := make(map[string]string)

	var defaultLabel string
	for i, opt := range options {
		if opt.Description != "" {
			labels[i] = opt.Value + " - " + opt.Description
		} else {
			labels[i] = opt.Value
		}
		valueMap[labels[i]] = opt.Value
		if opt.Value == defaultValue {
			defaultLabel = labels[i]
		}
	}

	var result string
	prompt := &survey.Select{
		Message: message,
		Options: labels,
	}
	if defaultLabel != "" {
		prompt.Default = defaultLabel
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return valueMap[result], nil
}

// Input はテキスト入力を受け付ける
func Input(message string, defaultValue string) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// Confirm は確認プロンプトを表示する
func Confirm(message string, defaultValue bool) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}
