package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[uint]*domain.Course
	watched map[uint][]uint // videoID -> userIDs
	nextID  uint
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: map[uint]*domain.Course{},
		watched: map[uint][]uint{},
		nextID:  1,
	}
}

func (r *fakeCourseRepo) CreateCourse(course *domain.Course) (*domain.Course, error) {
	course.ID = r.nextID
	r.nextID++
	r.courses[course.ID] = course
	return course, nil
}

func (r *fakeCourseRepo) FindCourseByID(courseID uint) (*domain.Course, error) {
	course, ok := r.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: course", apperr.ErrNotFound)
	}
	return course, nil
}

func (r *fakeCourseRepo) FindAllCourses() ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) FindCoursesByCategory(category string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.courses {
		if c.Category == category {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) FindCoursesByCreator(creatorID uint) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.courses {
		if c.CreatorID == creatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) SaveCourse(course *domain.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(courseID uint) error {
	if _, ok := r.courses[courseID]; !ok {
		return fmt.Errorf("%w: course", apperr.ErrNotFound)
	}
	delete(r.courses, courseID)
	return nil
}

func (r *fakeCourseRepo) ReplaceVideos(courseID uint, videos []domain.CourseVideo) error {
	course, ok := r.courses[courseID]
	if !ok {
		return fmt.Errorf("%w: course", apperr.ErrNotFound)
	}
	for i := range videos {
		videos[i].ID = r.nextID
		videos[i].CourseID = courseID
		r.nextID++
	}
	course.Videos = videos
	return nil
}

func (r *fakeCourseRepo) FindVideo(courseID, videoID uint) (*domain.CourseVideo, error) {
	course, ok := r.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: course", apperr.ErrNotFound)
	}
	for i := range course.Videos {
		if course.Videos[i].ID == videoID {
			return &course.Videos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: video", apperr.ErrNotFound)
}

func (r *fakeCourseRepo) MarkWatched(videoID, userID uint) error {
	r.watched[videoID] = append(r.watched[videoID], userID)
	return nil
}

// fakeUploader returns deterministic URLs and records what it saw.
type fakeUploader struct {
	uploads []string
	fail    bool
}

func (u *fakeUploader) Upload(_ context.Context, folder, filename string, r io.Reader) (string, error) {
	if u.fail {
		return "", fmt.Errorf("upstream rejected upload")
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	url := "https://cdn.example.com/" + folder + "/" + filename
	u.uploads = append(u.uploads, url)
	return url, nil
}

type courseFixture struct {
	svc      CourseService
	repo     *fakeCourseRepo
	users    *fakeUserRepo
	uploader *fakeUploader
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	repo := newFakeCourseRepo()
	users := newFakeUserRepo()
	uploader := &fakeUploader{}
	return &courseFixture{
		svc:      NewCourseService(repo, users, uploader),
		repo:     repo,
		users:    users,
		uploader: uploader,
	}
}

func (f *courseFixture) addUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := f.users.CreateUser(&domain.User{Email: email, Name: "Somchai", IsVerified: true})
	require.NoError(t, err)
	return user
}

func (f *courseFixture) addCourse(t *testing.T, title, category string, creatorID uint) *domain.Course {
	t.Helper()
	course, err := f.repo.CreateCourse(&domain.Course{
		Title:      title,
		Category:   category,
		AuthorName: "Somchai",
		CreatorID:  creatorID,
	})
	require.NoError(t, err)
	return course
}

func TestCoursesByCategoryFallsBackToAll(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "Go Basics", "programming", 1)
	f.addCourse(t, "Watercolors", "art", 1)

	all, err := f.svc.CoursesByCategory("  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	art, err := f.svc.CoursesByCategory("art")
	require.NoError(t, err)
	require.Len(t, art, 1)
	assert.Equal(t, "Watercolors", art[0].Title)
}

func TestPreferenceCourses(t *testing.T) {
	f := newCourseFixture(t)
	user := f.addUser(t, "somchai@example.com")
	f.addCourse(t, "Go Basics", "programming", 1)
	f.addCourse(t, "Watercolors", "art", 1)
	f.addCourse(t, "Oil Painting", "art", 1)

	require.NoError(t, f.svc.SavePreferences(user.ID, []string{"art"}))

	courses, err := f.svc.PreferenceCourses(user.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	_, err = f.svc.PreferenceCourses(999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleBookmark(t *testing.T) {
	f := newCourseFixture(t)
	user := f.addUser(t, "somchai@example.com")
	course := f.addCourse(t, "Go Basics", "programming", 1)

	added, err := f.svc.ToggleBookmark(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, added)

	bookmarks, err := f.svc.ShowBookmarks(user.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)

	// second toggle removes it again
	added, err = f.svc.ToggleBookmark(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, added)

	bookmarks, err = f.svc.ShowBookmarks(user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestToggleBookmarkUnknownCourse(t *testing.T) {
	f := newCourseFixture(t)
	user := f.addUser(t, "somchai@example.com")

	_, err := f.svc.ToggleBookmark(user.ID, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUnbookmark(t *testing.T) {
	f := newCourseFixture(t)
	user := f.addUser(t, "somchai@example.com")
	course := f.addCourse(t, "Go Basics", "programming", 1)

	_, err := f.svc.ToggleBookmark(user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Unbookmark(user.ID, course.ID))

	bookmarks, err := f.svc.ShowBookmarks(user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestRateAggregates(t *testing.T) {
	f := newCourseFixture(t)
	course := f.addCourse(t, "Go Basics", "programming", 1)

	_, err := f.svc.Rate(course.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.Rate(course.ID, 5.5)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	rated, err := f.svc.Rate(course.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rated.RatingFinal)

	rated, err = f.svc.Rate(course.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rated.RatingFinal)
	assert.Equal(t, 2, rated.RatingCount)
}

func TestCreateCourseUploadsImage(t *testing.T) {
	f := newCourseFixture(t)

	course, err := f.svc.CreateCourse(context.Background(), 7, dto.CreateCourseRequest{
		Title:       " Go Basics ",
		Category:    "programming",
		Name:        "Somchai",
		Description: "Learn Go",
		Price:       "199",
	}, "cover.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", course.Title)
	assert.Equal(t, uint(7), course.CreatorID)
	assert.Contains(t, course.ImageURL, "courses/images/cover.png")
	require.Len(t, f.uploader.uploads, 1)
}

func TestCreateCourseRequiresImage(t *testing.T) {
	f := newCourseFixture(t)

	_, err := f.svc.CreateCourse(context.Background(), 7, dto.CreateCourseRequest{
		Title: "Go Basics",
	}, "", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateCourseUploadFailure(t *testing.T) {
	f := newCourseFixture(t)
	f.uploader.fail = true

	_, err := f.svc.CreateCourse(context.Background(), 7, dto.CreateCourseRequest{
		Title: "Go Basics",
	}, "cover.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

func TestUpdateCoursePartial(t *testing.T) {
	f := newCourseFixture(t)
	course := f.addCourse(t, "Go Basics", "programming", 1)
	course.ImageURL = "https://cdn.example.com/courses/images/old.png"
	require.NoError(t, f.repo.SaveCourse(course))

	updated, err := f.svc.UpdateCourse(context.Background(), dto.UpdateCourseRequest{
		CourseID: course.ID,
		Title:    "Go Advanced",
	}, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Go Advanced", updated.Title)
	assert.Equal(t, "programming", updated.Category)
	// no new image means the old URL survives
	assert.Equal(t, "https://cdn.example.com/courses/images/old.png", updated.ImageURL)
}

func TestUploadVideosReplacesContent(t *testing.T) {
	f := newCourseFixture(t)
	course := f.addCourse(t, "Go Basics", "programming", 1)

	err := f.svc.UploadVideos(context.Background(), course.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = f.svc.UploadVideos(context.Background(), 999, []VideoFile{{Name: "a.mp4", Reader: strings.NewReader("x")}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.svc.UploadVideos(context.Background(), course.ID, []VideoFile{
		{Name: "intro.mp4", Reader: strings.NewReader("x")},
		{Name: "setup.mp4", Reader: strings.NewReader("y")},
	})
	require.NoError(t, err)

	stored, err := f.repo.FindCourseByID(course.ID)
	require.NoError(t, err)
	require.Len(t, stored.Videos, 2)
	assert.Contains(t, stored.Videos[0].VideoURL, "courses/videos/intro.mp4")
}

func TestMarkWatched(t *testing.T) {
	f := newCourseFixture(t)
	user := f.addUser(t, "somchai@example.com")
	course := f.addCourse(t, "Go Basics", "programming", 1)

	require.NoError(t, f.svc.UploadVideos(context.Background(), course.ID, []VideoFile{
		{Name: "intro.mp4", Reader: strings.NewReader("x")},
	}))
	stored, err := f.repo.FindCourseByID(course.ID)
	require.NoError(t, err)
	videoID := stored.Videos[0].ID

	err = f.svc.MarkWatched(user.ID, course.ID, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.svc.MarkWatched(user.ID, course.ID, videoID))
	assert.Equal(t, []uint{user.ID}, f.repo.watched[videoID])
}

func TestTeacherHome(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "Go Basics", "programming", 7)
	f.addCourse(t, "Watercolors", "art", 8)

	_, err := f.svc.TeacherHome(0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	courses, err := f.svc.TeacherHome(7)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}

func TestDeleteCourse(t *testing.T) {
	f := newCourseFixture(t)
	course := f.addCourse(t, "Go Basics", "programming", 1)

	require.NoError(t, f.svc.DeleteCourse(course.ID))
	assert.ErrorIs(t, f.svc.DeleteCourse(course.ID), apperr.ErrNotFound)
}
