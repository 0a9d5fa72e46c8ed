package notifier

// INotifier shows short toast-like notifications to the user.
type INotifier interface {
	Success(title string, detail string)
	Error(title string, detail string)
}
