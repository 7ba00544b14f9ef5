package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"broad-forum/internal/ai"
	"broad-forum/internal/app"
	"broad-forum/internal/config"
	"broad-forum/internal/engine/actors"
	"broad-forum/internal/forms"
	"broad-forum/internal/models"
	"broad-forum/internal/utils"
)

// repl renders engine state and dispatches typed commands. All logic
// lives behind the facade; this file only parses and prints.
type repl struct {
	client *app.Client
	out    *bufio.Writer

	// Posts and apps as last listed, so commands can refer to them
	// by number.
	listed     []models.Post
	listedApps []models.OpcApp
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	assistant := ai.NewAssistant(cfg.AI.APIKey, cfg.AI.Model)
	client := app.NewClient(cfg, assistant)
	defer client.Shutdown()

	r := &repl{
		client: client,
		out:    bufio.NewWriter(os.Stdout),
	}

	fmt.Println("BROADFORUM. Type 'help' for commands.")
	r.showFeed(actors.FeedHome)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		r.dispatch(line)
	}
}

func (r *repl) dispatch(line string) {
	defer r.out.Flush()

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	var err error
	switch cmd {
	case "help":
		r.printHelp()
	case "home":
		err = r.navigate(actors.HomeView{})
	case "popular":
		err = r.navigate(actors.PopularView{})
	case "communities":
		err = r.showCommunities()
	case "community":
		err = r.openCommunity(rest)
	case "sort":
		err = r.setSort(rest)
	case "open":
		err = r.openPost(args)
	case "back":
		err = r.back()
	case "vote":
		err = r.vote(args)
	case "comment":
		err = r.comment(rest)
	case "search":
		err = r.search(rest)
	case "join":
		err = r.join(rest)
	case "joined":
		err = r.showJoined()
	case "login":
		err = r.login(args)
	case "register":
		err = r.register()
	case "logout":
		err = r.client.Logout()
		if err == nil {
			fmt.Fprintln(r.out, "Signed out.")
		}
	case "profile":
		err = r.showProfile()
	case "setprofile":
		err = r.editProfile()
	case "post":
		err = r.createPost()
	case "apps":
		err = r.showApps(rest)
	case "submitapp":
		err = r.submitApp()
	case "myapps":
		err = r.showMyApps()
	case "editapp":
		err = r.editApp(args)
	case "delapp":
		err = r.deleteApp(args)
	case "chat":
		err = r.navigate(actors.ChatView{})
		if err == nil {
			fmt.Fprintln(r.out, "Chat started. Use 'ask <question>'.")
		}
	case "ask":
		err = r.ask(rest)
	case "summarize":
		err = r.summarize(args)
	case "polish":
		r.polish(rest)
	case "stats":
		r.showStats()
	default:
		fmt.Fprintf(r.out, "Unknown command %q. Type 'help'.\n", cmd)
	}

	if err != nil {
		if utils.IsLoginPrompt(err) {
			fmt.Fprintln(r.out, "You need to sign in first: login <username> <password>")
			return
		}
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `Commands:
  home | popular          show a feed
  sort best|hot|new       change feed sorting
  communities             list all communities
  community <name>        open a community page
  open <n>                open post n from the last listing
  back                    leave the post detail view
  vote <n> up|down        toggle a vote on post n
  comment <text>          comment on the open post
  search <text>           search posts
  join <name>             toggle membership in a community
  joined                  list joined communities
  login <user> <pass>     sign in (demo: user_99 / broadforum)
  register                create an account
  logout                  sign out
  profile                 show or edit your profile
  post                    create a post
  apps [official|community]  browse the OPC app directory
  submitapp               submit an app
  myapps                  list your submitted apps
  editapp <n>             edit app n from 'myapps'
  delapp <n>              remove app n from 'myapps'
  setprofile              edit your profile
  chat                    start an assistant chat
  ask <question>          ask the assistant
  summarize <n>           summarize post n
  polish <text>           let the assistant rewrite a draft
  stats                   engine statistics
  quit                    exit
`)
}

func (r *repl) navigate(view actors.View) error {
	state, err := r.client.Navigate(view)
	if err != nil {
		return err
	}
	switch state.View.(type) {
	case actors.HomeView:
		return r.showFeed(actors.FeedHome)
	case actors.PopularView:
		return r.showFeed(actors.FeedPopular)
	}
	return nil
}

func (r *repl) currentSort() models.SortMode {
	state, err := r.client.NavState()
	if err != nil {
		return models.DefaultSort
	}
	return state.Sort
}

func (r *repl) listPosts(posts []models.Post) {
	r.listed = posts
	for i, p := range posts {
		fmt.Fprintf(r.out, "%2d. [%s] %s (%d upvotes, %d comments, %s)\n",
			i+1, p.CommunityName, p.Title, p.Upvotes, p.CommentCount, p.TimeAgo)
	}
	if len(posts) == 0 {
		fmt.Fprintln(r.out, "No posts.")
	}
}

func (r *repl) showFeed(kind actors.FeedKind) error {
	posts, err := r.client.Feed(kind, r.currentSort())
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "--- %s feed ---\n", kind)
	r.listPosts(posts)
	return nil
}

func (r *repl) setSort(arg string) error {
	var sort models.SortMode
	switch arg {
	case "best":
		sort = models.SortBest
	case "hot":
		sort = models.SortHot
	case "new":
		sort = models.SortNew
	default:
		return fmt.Errorf("unknown sort %q", arg)
	}
	if _, err := r.client.SetSort(sort); err != nil {
		return err
	}
	return r.refreshFeed()
}

func (r *repl) refreshFeed() error {
	state, err := r.client.NavState()
	if err != nil {
		return err
	}
	if _, ok := state.View.(actors.PopularView); ok {
		return r.showFeed(actors.FeedPopular)
	}
	return r.showFeed(actors.FeedHome)
}

func (r *repl) postByNumber(arg string) (models.Post, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(r.listed) {
		return models.Post{}, fmt.Errorf("no listed post %q", arg)
	}
	return r.listed[n-1], nil
}

func (r *repl) openPost(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: open <n>")
	}
	post, err := r.postByNumber(args[0])
	if err != nil {
		return err
	}
	if _, err := r.client.OpenPost(post); err != nil {
		return err
	}
	return r.showPostDetail(post)
}

func (r *repl) showPostDetail(post models.Post) error {
	// Re-read for the vote overlay and comment count.
	current, err := r.client.Post(post.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "=== %s ===\n", current.Title)
	fmt.Fprintf(r.out, "[%s] by %s, %s, %d upvotes\n\n", current.CommunityName, current.Author, current.TimeAgo, current.Upvotes)
	fmt.Fprintln(r.out, current.Content)

	comments, err := r.client.Comments(current.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\n--- %d comments ---\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(r.out, "%s (%d upvotes, %s): %s\n", c.Author, c.Upvotes, c.TimeAgo, c.Content)
	}
	return nil
}

func (r *repl) back() error {
	state, err := r.client.Back()
	if err != nil {
		return err
	}
	switch v := state.View.(type) {
	case actors.CommunityDetailView:
		return r.showCommunity(v.Community)
	case actors.HomeView:
		return r.showFeed(actors.FeedHome)
	}
	return nil
}

func (r *repl) vote(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: vote <n> up|down")
	}
	post, err := r.postByNumber(args[0])
	if err != nil {
		return err
	}
	var direction models.VoteDirection
	switch args[1] {
	case "up":
		direction = models.VoteUp
	case "down":
		direction = models.VoteDown
	default:
		return fmt.Errorf("vote direction must be up or down")
	}
	result, err := r.client.VotePost(post.ID, direction)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%q now at %d upvotes (your vote: %s)\n", post.Title, result.Count, result.Direction)
	return nil
}

func (r *repl) comment(text string) error {
	state, err := r.client.NavState()
	if err != nil {
		return err
	}
	detail, ok := state.View.(actors.PostDetailView)
	if !ok {
		return fmt.Errorf("open a post first")
	}
	comment, err := r.client.AddComment(detail.Post.ID, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Comment posted as %s.\n", comment.Author)
	return nil
}

func (r *repl) search(query string) error {
	posts, err := r.client.Search(query, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "--- results for %q ---\n", query)
	r.listPosts(posts)
	return nil
}

func (r *repl) showCommunities() error {
	if _, err := r.client.Navigate(actors.CommunitiesView{}); err != nil {
		return err
	}
	joined, err := r.client.JoinedCommunities()
	if err != nil {
		return err
	}
	joinedSet := make(map[string]bool, len(joined))
	for _, c := range joined {
		joinedSet[c.Name] = true
	}
	for _, c := range r.client.Communities() {
		marker := " "
		if joinedSet[c.Name] {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %-14s %-14s %s\n", marker, c.Name, c.MemberLabel, c.Description)
	}
	return nil
}

func (r *repl) findCommunity(name string) (models.Community, error) {
	c, ok := r.client.Store.CommunityByName(name)
	if !ok {
		return models.Community{}, fmt.Errorf("no community named %q", name)
	}
	return c, nil
}

func (r *repl) openCommunity(name string) error {
	community, err := r.findCommunity(name)
	if err != nil {
		return err
	}
	if _, err := r.client.OpenCommunity(community); err != nil {
		return err
	}
	return r.showCommunity(community)
}

func (r *repl) showCommunity(community models.Community) error {
	fmt.Fprintf(r.out, "=== %s (%s) ===\n%s\n", community.Name, community.MemberLabel, community.Description)
	if joined, err := r.client.IsJoined(community.ID); err == nil && joined {
		fmt.Fprintln(r.out, "(you are a member)")
	}
	fmt.Fprintln(r.out)
	posts, err := r.client.CommunityPosts(community.Name)
	if err != nil {
		return err
	}
	r.listPosts(posts)
	return nil
}

func (r *repl) join(name string) error {
	community, err := r.findCommunity(name)
	if err != nil {
		return err
	}
	result, err := r.client.ToggleJoin(community.ID)
	if err != nil {
		return err
	}
	if result.Joined {
		fmt.Fprintf(r.out, "Joined %s.\n", community.Name)
	} else {
		fmt.Fprintf(r.out, "Left %s.\n", community.Name)
	}
	return nil
}

func (r *repl) showJoined() error {
	joined, err := r.client.JoinedCommunities()
	if err != nil {
		return err
	}
	if len(joined) == 0 {
		fmt.Fprintln(r.out, "No joined communities.")
		return nil
	}
	for _, c := range joined {
		fmt.Fprintf(r.out, "%s\n", c.Name)
	}
	return nil
}

func (r *repl) login(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}
	session, err := r.client.Login(forms.LoginForm{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Welcome back, %s.\n", session.DisplayName)
	return nil
}

func (r *repl) prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func (r *repl) register() error {
	scanner := bufio.NewScanner(os.Stdin)
	form := forms.RegisterForm{
		Username:        r.prompt(scanner, "Username"),
		DisplayName:     r.prompt(scanner, "Display name"),
		Password:        r.prompt(scanner, "Password"),
		ConfirmPassword: r.prompt(scanner, "Confirm password"),
	}
	fmt.Printf("Captcha code is %s\n", r.client.Captcha().Code())
	form.CaptchaInput = r.prompt(scanner, "Enter captcha")
	form.Agreed = strings.EqualFold(r.prompt(scanner, "Accept the user agreement? (yes/no)"), "yes")

	session, err := r.client.Register(form)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Account created. Signed in as %s.\n", session.DisplayName)
	return nil
}

func (r *repl) showProfile() error {
	profile, err := r.client.Profile()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Display name: %s\nEmail: %s\nBio: %s\n", profile.DisplayName, profile.Email, profile.Bio)
	return nil
}

func (r *repl) createPost() error {
	scanner := bufio.NewScanner(os.Stdin)
	draft := forms.PostDraft{
		Title:   r.prompt(scanner, "Title"),
		Summary: r.prompt(scanner, "Summary (optional)"),
	}
	communityName := r.prompt(scanner, "Community")
	community, err := r.findCommunity(communityName)
	if err != nil {
		return err
	}
	draft.CommunityID = community.ID
	draft.Content = r.prompt(scanner, "Content")

	post, err := r.client.CreatePost(draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Published %q in %s.\n", post.Title, post.CommunityName)
	return nil
}

func (r *repl) showApps(filterArg string) error {
	filter := actors.AppFilterAll
	switch filterArg {
	case "official":
		filter = actors.AppFilterOfficial
	case "community":
		filter = actors.AppFilterCommunity
	}
	if _, err := r.client.Navigate(actors.AppStoreView{}); err != nil {
		return err
	}
	apps, err := r.client.Apps(filter)
	if err != nil {
		return err
	}
	for _, a := range apps {
		fmt.Fprintf(r.out, "%-20s %-9s %4d stars  %s\n", a.Name, a.Type, a.Stars, a.URL)
	}
	return nil
}

func (r *repl) submitApp() error {
	scanner := bufio.NewScanner(os.Stdin)
	draft := forms.AppDraft{
		Name:        r.prompt(scanner, "App name"),
		URL:         r.prompt(scanner, "URL"),
		Description: r.prompt(scanner, "Description"),
	}
	submitted, err := r.client.SubmitApp(draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Submitted %s (%s).\n", submitted.Name, submitted.URL)
	return nil
}

func (r *repl) editProfile() error {
	profile, err := r.client.Profile()
	if err != nil {
		return err
	}
	if _, err := r.client.Navigate(actors.SettingsView{}); err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)
	if v := r.prompt(scanner, "Display name ["+profile.DisplayName+"]"); v != "" {
		profile.DisplayName = v
	}
	if v := r.prompt(scanner, "Email ["+profile.Email+"]"); v != "" {
		profile.Email = v
	}
	if v := r.prompt(scanner, "Bio ["+profile.Bio+"]"); v != "" {
		profile.Bio = v
	}
	updated, err := r.client.UpdateProfile(profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Profile saved for %s.\n", updated.DisplayName)
	return nil
}

func (r *repl) showMyApps() error {
	session, err := r.client.Session()
	if err != nil {
		return err
	}
	if _, err := r.client.Navigate(actors.AppManageView{}); err != nil {
		return err
	}
	apps, err := r.client.Apps(actors.AppFilterCommunity)
	if err != nil {
		return err
	}
	r.listedApps = r.listedApps[:0]
	for _, a := range apps {
		if a.Author != session.DisplayName {
			continue
		}
		r.listedApps = append(r.listedApps, a)
		fmt.Fprintf(r.out, "%2d. %-20s %4d stars  %s\n", len(r.listedApps), a.Name, a.Stars, a.URL)
	}
	if len(r.listedApps) == 0 {
		fmt.Fprintln(r.out, "No submitted apps.")
	}
	return nil
}

func (r *repl) appByNumber(args []string) (models.OpcApp, error) {
	if len(args) < 1 {
		return models.OpcApp{}, fmt.Errorf("list your apps with 'myapps' first")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.listedApps) {
		return models.OpcApp{}, fmt.Errorf("no listed app %q", args[0])
	}
	return r.listedApps[n-1], nil
}

func (r *repl) editApp(args []string) error {
	target, err := r.appByNumber(args)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)
	name := r.prompt(scanner, "Name ["+target.Name+"]")
	url := r.prompt(scanner, "URL ["+target.URL+"]")
	description := r.prompt(scanner, "Description (blank keeps current)")

	updated, err := r.client.UpdateApp(target.ID, name, url, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Updated %s (%s).\n", updated.Name, updated.URL)
	return nil
}

func (r *repl) deleteApp(args []string) error {
	target, err := r.appByNumber(args)
	if err != nil {
		return err
	}
	if err := r.client.DeleteApp(target.ID); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Removed %s.\n", target.Name)
	return nil
}

func (r *repl) ask(question string) error {
	if _, err := r.client.AskAssistant(question); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "(thinking...)")

	// Poll until the reply lands; the engine stays responsive meanwhile.
	for {
		time.Sleep(100 * time.Millisecond)
		state, err := r.client.Transcript()
		if err != nil {
			return err
		}
		if !state.Loading {
			if len(state.Messages) > 0 {
				last := state.Messages[len(state.Messages)-1]
				fmt.Fprintf(r.out, "Assistant: %s\n", last.Content)
			}
			return nil
		}
	}
}

func (r *repl) summarize(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: summarize <n>")
	}
	post, err := r.postByNumber(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Summary: %s\n", r.client.SummarizePost(post))
	return nil
}

func (r *repl) polish(text string) {
	fmt.Fprintf(r.out, "Rewritten: %s\n", r.client.PolishDraft(text))
}

func (r *repl) showStats() {
	opStats, requests, errors := r.client.Stats()
	fmt.Fprintf(r.out, "Requests: %d (%d errors), uptime %v\n", requests, errors, r.client.Metrics.Uptime().Round(time.Millisecond))
	for name, op := range opStats {
		fmt.Fprintf(r.out, "  %-16s count=%d avg=%v max=%v\n", name, op.Count, op.Average, op.Max)
	}
}
