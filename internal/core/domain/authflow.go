package domain

// AuthFlowState selects which authentication screen is shown.
type AuthFlowState string

const (
	FlowInitial                 AuthFlowState = "initial"
	FlowOTPSent                 AuthFlowState = "otp_sent"
	FlowForgotPasswordForm      AuthFlowState = "forgot_password_form"
	FlowForgotPasswordRequested AuthFlowState = "forgot_password_requested"
	FlowResetPasswordForm       AuthFlowState = "reset_password_form"
)

// flowTransitions lists the targets reachable from a specific state.
var flowTransitions = map[AuthFlowState][]AuthFlowState{
	FlowInitial:            {FlowOTPSent, FlowForgotPasswordForm},
	FlowForgotPasswordForm: {FlowForgotPasswordRequested},
	FlowOTPSent:            {FlowInitial},
	FlowResetPasswordForm:  {FlowInitial},
}

// Back to login and opening a reset link work from anywhere.
var flowGlobalTargets = []AuthFlowState{FlowInitial, FlowResetPasswordForm}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s AuthFlowState) CanTransitionTo(next AuthFlowState) bool {
	for _, allowed := range flowGlobalTargets {
		if allowed == next {
			return true
		}
	}
	for _, allowed := range flowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
