// Package cli реализует консольный клиент PrimeTrade поверх session.Manager.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/magabrotheeeer/primetrade/internal/client/api"
	"github.com/magabrotheeeer/primetrade/internal/client/session"
)

// ErrUsage неизвестная или отсутствующая подкоманда.
var ErrUsage = errors.New("usage error")

const usage = `Usage: primetrade-cli [-a api-url] [-t token-file] <command>

Commands:
  register    create an account and sign in
  login       sign in with email and password
  logout      end the current session
  me          show the signed-in user
  profile     change name and email
  dashboard   show the trading dashboard
  stats       show detailed statistics
`

// App консольное приложение.
type App struct {
	manager *session.Manager
	reader  *bufio.Reader
	out     io.Writer
}

// New создает App, читающее ввод из in и пишущее в out.
func New(manager *session.Manager, in io.Reader, out io.Writer) *App {
	return &App{
		manager: manager,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run восстанавливает сессию и выполняет подкоманду args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	a.manager.Init(ctx)

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		a.manager.Logout(ctx)
		fmt.Fprintln(a.out, "Logged out")
		return nil
	case "me":
		return a.me()
	case "profile":
		return a.profile(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "stats":
		return a.stats(ctx)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n\n%s", args[0], usage)
		return ErrUsage
	}
}

func (a *App) register(ctx context.Context) error {
	username, err := getText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.manager.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password}); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.manager.State().User.Username)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := getText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.manager.Login(ctx, email, password); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", a.manager.State().User.Username)
	return nil
}

func (a *App) me() error {
	st := a.manager.State()
	if !st.Authenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return session.ErrNotAuthenticated
	}
	u := st.User
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Member since:\t%s\n", u.CreatedAt.Format("2006-01-02"))
	if u.LastLogin != nil {
		fmt.Fprintf(tw, "Last login:\t%s\n", u.LastLogin.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) profile(ctx context.Context) error {
	if !a.manager.State().Authenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return session.ErrNotAuthenticated
	}
	name, err := getText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	if err := a.manager.UpdateProfile(ctx, name, email); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) dashboard(ctx context.Context) error {
	data, err := a.manager.Dashboard(ctx)
	if err != nil {
		return a.fail(err)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total trades:\t%d\n", data.Stats.TotalTrades)
	fmt.Fprintf(tw, "Total profit:\t%.2f\n", data.Stats.TotalProfit)
	fmt.Fprintf(tw, "Win rate:\t%.1f%%\n", data.Stats.WinRate)
	fmt.Fprintf(tw, "Active positions:\t%d\n", data.Stats.ActivePositions)
	fmt.Fprintf(tw, "Portfolio value:\t%.2f (%+.2f%%)\n", data.Portfolio.TotalValue, data.Portfolio.DayChangePercent)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(data.RecentActivity) > 0 {
		fmt.Fprintln(a.out, "\nRecent activity:")
		for _, act := range data.RecentActivity {
			fmt.Fprintf(a.out, "  %s  %s\n", act.Timestamp.Format("2006-01-02 15:04"), act.Description)
		}
	}
	return nil
}

func (a *App) stats(ctx context.Context) error {
	data, err := a.manager.Stats(ctx)
	if err != nil {
		return a.fail(err)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Trades:\t%d (%d successful)\n", data.Overview.TotalTrades, data.Overview.SuccessfulTrades)
	fmt.Fprintf(tw, "Profit / loss:\t%.2f / %.2f\n", data.Overview.TotalProfit, data.Overview.TotalLoss)
	fmt.Fprintf(tw, "Sharpe ratio:\t%.2f\n", data.Performance.SharpeRatio)
	fmt.Fprintln(tw, "\nMonth\tProfit\tTrades")
	for _, m := range data.Monthly {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\n", m.Month, m.Profit, m.Trades)
	}
	return tw.Flush()
}

// fail выводит сообщение об ошибке из состояния сессии либо текст ошибки.
func (a *App) fail(err error) error {
	msg := a.manager.State().Error
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		msg = "Not logged in"
	case msg == "":
		if m, ok := api.MessageOf(err); ok {
			msg = m
		} else {
			msg = err.Error()
		}
	}
	fmt.Fprintf(a.out, "Error: %s\n", msg)
	return err
}
