// Command seed fills the database with realistic fake progression data.
//
// WARNING: drops all existing training data before inserting.
package main

import (
	"context"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/config"
	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
	mongorepo "gaindalf/internal/repository/mongo"
)

// fakerSeed makes seed runs reproducible.
const fakerSeed = 42

var muscleGroups = []string{
	"Chest", "Back", "Shoulders", "Biceps", "Triceps",
	"Quads", "Hamstrings", "Glutes", "Core", "Calves",
}

type seedLift struct {
	name string
	late bool // introduced after workout 10 to exercise empty-history behaviour
}

var liftsByGroup = map[string][]seedLift{
	"Chest":      {{"Bench Press", false}, {"Incline Dumbbell Press", false}, {"Cable Fly", true}},
	"Back":       {{"Deadlift", false}, {"Pull-up", false}, {"Barbell Row", false}},
	"Shoulders":  {{"Overhead Press", false}, {"Lateral Raise", false}, {"Face Pull", true}},
	"Biceps":     {{"Barbell Curl", false}, {"Hammer Curl", true}},
	"Triceps":    {{"Tricep Pushdown", false}, {"Skull Crusher", false}},
	"Quads":      {{"Squat", false}, {"Leg Press", false}, {"Bulgarian Split Squat", false}},
	"Hamstrings": {{"Romanian Deadlift", false}, {"Leg Curl", false}},
	"Glutes":     {{"Hip Thrust", false}, {"Cable Kickback", true}},
	"Core":       {{"Ab Wheel Rollout", false}, {"Hanging Leg Raise", false}},
	"Calves":     {{"Standing Calf Raise", false}, {"Seated Calf Raise", true}},
}

// Base working weights in kilograms. Lifts missing from the map are
// bodyweight (reps only).
var baseWeights = map[string]float64{
	"Bench Press":            80.0,
	"Incline Dumbbell Press": 24.0,
	"Cable Fly":              15.0,
	"Deadlift":               120.0,
	"Barbell Row":            70.0,
	"Overhead Press":         50.0,
	"Lateral Raise":          10.0,
	"Face Pull":              20.0,
	"Barbell Curl":           30.0,
	"Hammer Curl":            14.0,
	"Tricep Pushdown":        35.0,
	"Skull Crusher":          25.0,
	"Squat":                  100.0,
	"Leg Press":              150.0,
	"Bulgarian Split Squat":  20.0,
	"Romanian Deadlift":      80.0,
	"Leg Curl":               40.0,
	"Hip Thrust":             80.0,
	"Cable Kickback":         15.0,
	"Standing Calf Raise":    60.0,
	"Seated Calf Raise":      40.0,
}

var conflictPairs = [][2]string{
	{"Biceps", "Triceps"},
	{"Chest", "Shoulders"},
}

// workoutTemplates lists the muscle groups trained per session, one entry per
// seeded workout.
var workoutTemplates = [][]string{
	{"Chest", "Back", "Core"},
	{"Quads", "Hamstrings", "Glutes", "Calves"},
	{"Shoulders", "Biceps", "Triceps"},
	{"Back", "Chest", "Core"},
	{"Quads", "Glutes", "Calves"},
	{"Shoulders", "Triceps", "Biceps"},
	{"Chest", "Back", "Core"},
	{"Hamstrings", "Quads", "Calves", "Glutes"},
	{"Biceps", "Back", "Shoulders"},
	{"Chest", "Triceps", "Core"},
	{"Quads", "Hamstrings", "Glutes"},
	{"Back", "Biceps", "Calves"},
	{"Chest", "Shoulders", "Core"},
	{"Quads", "Glutes", "Hamstrings", "Calves"},
	{"Triceps", "Back", "Shoulders"},
	{"Chest", "Core", "Back"},
	{"Quads", "Calves", "Glutes"},
	{"Shoulders", "Biceps", "Triceps"},
	{"Chest", "Back", "Core"},
	{"Quads", "Hamstrings", "Calves"},
}

var subtitles = []string{
	"Heavy push day",
	"Leg destroyer",
	"Arm pump",
	"Back and chest",
	"Lower body",
	"Upper body",
	"Full send",
	"Deload day",
	"",
	"PR attempt",
	"",
	"Volume day",
	"Hypertrophy focus",
	"",
	"Strength focus",
	"Quick session",
	"",
	"Pre-holiday grind",
	"Back at it",
	"Season finale",
}

// progressionWeight applies progressive overload with noise, rounded to the
// nearest 2.5 kg plate increment.
func progressionWeight(faker *gofakeit.Faker, base float64, workoutIdx int) float64 {
	factor := 1.0 + 0.025*float64(workoutIdx) + faker.Float64Range(-0.05, 0.05)
	return math.Round(base*factor/2.5) * 2.5
}

// progressionReps models bodyweight lifts: starts around 5 reps, trends up.
func progressionReps(faker *gofakeit.Faker, workoutIdx int) int {
	reps := 5 + workoutIdx/3 + faker.Number(-1, 1)
	if reps < 1 {
		return 1
	}
	return reps
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	faker := gofakeit.New(fakerSeed)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Wipe existing training data. The user account survives.
	for _, name := range []string{"workout_lifts", "workouts", "muscle_group_conflicts", "lifts", "muscle_groups"} {
		if err := appDB.Collection(name).Drop(ctx); err != nil {
			log.Fatalf("Failed to drop collection %s: %v", name, err)
		}
	}
	log.Info("Cleared existing data.")

	groupRepo := mongorepo.NewMongoMuscleGroupRepository(appDB)
	liftRepo := mongorepo.NewMongoLiftRepository(appDB)
	conflictRepo := mongorepo.NewMongoConflictRepository(appDB)
	workoutRepo := mongorepo.NewMongoWorkoutRepository(appDB)

	seed(ctx, faker, groupRepo, liftRepo, conflictRepo, workoutRepo)
}

func seed(
	ctx context.Context,
	faker *gofakeit.Faker,
	groupRepo repository.MuscleGroupRepository,
	liftRepo repository.LiftRepository,
	conflictRepo repository.ConflictRepository,
	workoutRepo repository.WorkoutRepository,
) {
	// --- Muscle groups ---
	groupIDs := make(map[string]domain.MuscleGroup, len(muscleGroups))
	for _, name := range muscleGroups {
		group := domain.MuscleGroup{Name: name}
		id, err := groupRepo.Create(ctx, &group)
		if err != nil {
			log.Fatalf("Failed to create muscle group %s: %v", name, err)
		}
		group.ID = id
		groupIDs[name] = group
	}
	log.Infof("Created %d muscle groups.", len(groupIDs))

	// --- Lifts ---
	liftIDs := make(map[string]domain.Lift)
	earlyByGroup := make(map[string][]string, len(liftsByGroup))
	allByGroup := make(map[string][]string, len(liftsByGroup))
	for groupName, lifts := range liftsByGroup {
		for _, l := range lifts {
			lift := domain.Lift{
				Name:           l.name,
				MuscleGroupIDs: []primitive.ObjectID{groupIDs[groupName].ID},
			}
			id, err := liftRepo.Create(ctx, &lift)
			if err != nil {
				log.Fatalf("Failed to create lift %s: %v", l.name, err)
			}
			lift.ID = id
			liftIDs[l.name] = lift
			allByGroup[groupName] = append(allByGroup[groupName], l.name)
			if !l.late {
				earlyByGroup[groupName] = append(earlyByGroup[groupName], l.name)
			}
		}
	}
	log.Infof("Created %d lifts.", len(liftIDs))

	// --- Conflicts ---
	for _, pair := range conflictPairs {
		conflict := domain.MuscleGroupConflict{
			GroupAID: groupIDs[pair[0]].ID,
			GroupBID: groupIDs[pair[1]].ID,
		}
		if _, err := conflictRepo.Create(ctx, &conflict); err != nil {
			log.Fatalf("Failed to create conflict %s/%s: %v", pair[0], pair[1], err)
		}
	}
	log.Infof("Created %d muscle group conflicts.", len(conflictPairs))

	// --- Workouts, one every 9 days over ~6 months ---
	startDate := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -180)
	const intervalDays = 9

	for workoutIdx, template := range workoutTemplates {
		workout := domain.Workout{
			Date:     startDate.AddDate(0, 0, workoutIdx*intervalDays),
			Subtitle: subtitles[workoutIdx],
		}
		workoutID, err := workoutRepo.Create(ctx, &workout)
		if err != nil {
			log.Fatalf("Failed to create workout %d: %v", workoutIdx, err)
		}

		// After workout 10 the late-introduced lifts join the pool.
		lateAvailable := workoutIdx >= 10

		for order, groupName := range template {
			pool := earlyByGroup[groupName]
			if lateAvailable {
				pool = allByGroup[groupName]
			}
			if len(pool) == 0 {
				continue
			}
			liftName := pool[faker.Number(0, len(pool)-1)]
			lift := liftIDs[liftName]

			occurrence := domain.WorkoutLift{
				WorkoutID:    workoutID,
				LiftID:       lift.ID,
				DisplayOrder: order,
			}
			occurrenceID, err := workoutRepo.AddLift(ctx, &occurrence)
			if err != nil {
				log.Fatalf("Failed to add %s to workout %d: %v", liftName, workoutIdx, err)
			}

			base, weighted := baseWeights[liftName]
			numSets := faker.Number(3, 4)
			sets := make([]domain.WorkoutSet, numSets)
			for i := range sets {
				if weighted {
					sets[i] = domain.WorkoutSet{
						SetNumber: i + 1,
						Reps:      intPtr(faker.Number(5, 10)),
						Weight:    floatPtr(progressionWeight(faker, base, workoutIdx)),
					}
				} else {
					sets[i] = domain.WorkoutSet{
						SetNumber: i + 1,
						Reps:      intPtr(progressionReps(faker, workoutIdx)),
					}
				}
			}
			if err := workoutRepo.ReplaceSets(ctx, occurrenceID, sets); err != nil {
				log.Fatalf("Failed to write sets for %s in workout %d: %v", liftName, workoutIdx, err)
			}
		}
	}
	log.Infof("Created %d workouts.", len(workoutTemplates))
	log.Info("Seed complete.")
}
