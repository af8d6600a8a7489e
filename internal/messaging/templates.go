package messaging

import (
	"bytes"
	"html/template"
	"time"
)

var applicationUpdateTmpl = template.Must(template.New("application").Parse(`<p>Hi {{.CandidateName}},</p>
<p>Your application status for the position of <b>{{.JobTitle}}</b> has been updated.</p>
<p><b>Status:</b> {{.Status}}</p>
{{if .ShowRound}}<p><b>Current Round:</b> {{.CurrentRound}} / {{.TotalRounds}}</p>{{end}}
<p>Thank you for your continued interest.</p>`))

var passwordResetTmpl = template.Must(template.New("reset").Parse(`<p>Hi {{.Name}},</p>
<p>Your OTP for password reset is:</p>
<h2>{{.Code}}</h2>
<p>This OTP is valid for {{.Minutes}} minutes.</p>
<p>If you didn't request this, please ignore this email.</p>`))

// ApplicationUpdate describes a candidate status email.
type ApplicationUpdate struct {
	CandidateName string
	JobTitle      string
	Status        string
	ShowRound     bool
	CurrentRound  int
	TotalRounds   int
}

// RenderApplicationUpdate builds the candidate status email.
func RenderApplicationUpdate(to string, u ApplicationUpdate) (Email, error) {
	var buf bytes.Buffer
	if err := applicationUpdateTmpl.Execute(&buf, u); err != nil {
		return Email{}, err
	}
	return Email{To: to, Subject: "Application Update for " + u.JobTitle, HTML: buf.String()}, nil
}

// RenderPasswordReset builds the admin reset OTP email.
func RenderPasswordReset(to, name, code string, ttl time.Duration) (Email, error) {
	if name == "" {
		name = "Admin"
	}
	var buf bytes.Buffer
	err := passwordResetTmpl.Execute(&buf, struct {
		Name    string
		Code    string
		Minutes int
	}{name, code, int(ttl.Minutes())})
	if err != nil {
		return Email{}, err
	}
	return Email{To: to, Subject: "Your OTP for Password Reset", HTML: buf.String()}, nil
}

// OTPMessage is the SMS body for phone verification.
func OTPMessage(code string, ttl time.Duration) string {
	return "Your verification code is " + code + ". It expires in " + ttl.String() + "."
}
