package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthbutler/swarm/internal/config"
	"github.com/healthbutler/swarm/internal/state"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your health profile",
	Long: `View or modify the saved health profile.

The profile is attached to every request so workers can tailor their
answers. Without a subcommand, displays the current profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfileShow()
	},
}

var (
	profileName          string
	profileAge           int
	profileHeight        float64
	profileWeight        float64
	profileActivity      string
	profileGoals         []string
	profileDiet          []string
	profileConditions    []string
	profileCalorieTarget int
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Unspecified flags keep their
current values.

Examples:
  butler profile set --name Sam --age 34
  butler profile set --goals "lose weight" --goals "sleep better"
  butler profile set --calorie-target 2100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfileSet(cmd)
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfileClear()
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Your name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level (sedentary, light, moderate, active)")
	profileSetCmd.Flags().StringArrayVar(&profileGoals, "goals", nil, "Health goals (repeatable)")
	profileSetCmd.Flags().StringArrayVar(&profileDiet, "diet", nil, "Dietary preferences (repeatable)")
	profileSetCmd.Flags().StringArrayVar(&profileConditions, "conditions", nil, "Medical conditions (repeatable)")
	profileSetCmd.Flags().IntVar(&profileCalorieTarget, "calorie-target", 0, "Daily calorie target")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileClearCmd)
}

func openProfileStore() (*state.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return openStore(cfg)
}

func runProfileShow() error {
	store, err := openProfileStore()
	if err != nil {
		return err
	}
	defer store.Close()

	profile, err := store.GetProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile saved. Set one with: butler profile set --name ... --age ...")
		return nil
	}

	label := color.New(color.FgCyan).SprintFunc()
	printField := func(name, value string) {
		if value != "" {
			fmt.Printf("%s %s\n", label(name+":"), value)
		}
	}

	printField("name", profile.Name)
	if profile.Age > 0 {
		printField("age", fmt.Sprintf("%d", profile.Age))
	}
	if profile.HeightCM > 0 {
		printField("height", fmt.Sprintf("%.1f cm", profile.HeightCM))
	}
	if profile.WeightKG > 0 {
		printField("weight", fmt.Sprintf("%.1f kg", profile.WeightKG))
	}
	printField("activity", profile.ActivityLevel)
	printField("goals", strings.Join(profile.Goals, ", "))
	printField("diet", strings.Join(profile.DietaryPreferences, ", "))
	printField("conditions", strings.Join(profile.Conditions, ", "))
	if profile.DailyCalorieTarget > 0 {
		printField("calorie target", fmt.Sprintf("%d kcal/day", profile.DailyCalorieTarget))
	}
	printField("updated", profile.UpdatedAt.Local().Format("2006-01-02 15:04"))

	return nil
}

func runProfileSet(cmd *cobra.Command) error {
	store, err := openProfileStore()
	if err != nil {
		return err
	}
	defer store.Close()

	profile, err := store.GetProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &state.Profile{}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		profile.Name = profileName
	}
	if flags.Changed("age") {
		profile.Age = profileAge
	}
	if flags.Changed("height") {
		profile.HeightCM = profileHeight
	}
	if flags.Changed("weight") {
		profile.WeightKG = profileWeight
	}
	if flags.Changed("activity") {
		profile.ActivityLevel = profileActivity
	}
	if flags.Changed("goals") {
		profile.Goals = profileGoals
	}
	if flags.Changed("diet") {
		profile.DietaryPreferences = profileDiet
	}
	if flags.Changed("conditions") {
		profile.Conditions = profileConditions
	}
	if flags.Changed("calorie-target") {
		profile.DailyCalorieTarget = profileCalorieTarget
	}

	if err := store.SaveProfile(profile); err != nil {
		return err
	}

	fmt.Println("Profile saved.")
	return nil
}

func runProfileClear() error {
	store, err := openProfileStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteProfile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Profile cleared.")
	return nil
}
